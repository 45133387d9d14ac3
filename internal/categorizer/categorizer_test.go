package categorizer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func assertResult(t *testing.T, got Result, category string, typ Type) {
	t.Helper()

	if got.Category != category {
		t.Errorf("expected category %q, got %q", category, got.Category)
	}
	if got.Type != typ {
		t.Errorf("expected type %q, got %q", typ, got.Type)
	}
}

func TestCategorize_Default(t *testing.T) {
	c := Default()

	tests := []struct {
		description string
		category    string
		typ         Type
	}{
		{"Pago de sueldo mensual", "Ingresos", TypeIncome},
		{"Cena en restaurant", "Alimentacion", TypeExpense},
		{"xyz unrelated text", Fallback, TypeExpense},
		{"CAFÉ con leche", "Alimentacion", TypeExpense},
		{"Uber al cine", "Transporte", TypeExpense},
		{"Farmacia de guardia", "Salud", TypeExpense},
		{"Factura de internet", "Servicios", TypeExpense},
		{"Regalo de cumpleaños", "Compras", TypeExpense},
		{"Proyecto freelance", "Ingresos", TypeIncome},
		{"Comisión por ventas", "Ingresos", TypeIncome},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assertResult(t, c.Categorize(tt.description), tt.category, tt.typ)
		})
	}
}

func TestCategorize_TypeAndCategoryAreIndependent(t *testing.T) {
	c := Default()

	assertResult(t, c.Categorize("Venta de ropa usada"), "Compras", TypeIncome)
	assertResult(t, c.Categorize("Reembolso taxi"), "Transporte", TypeIncome)
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	c := New([]Rule{
		{Label: "First", Keywords: []string{"shared"}},
		{Label: "Second", Keywords: []string{"shared", "only-second"}},
	}, nil)

	if got := c.Categorize("a shared word").Category; got != "First" {
		t.Errorf("expected First, got %s", got)
	}
	if got := c.Categorize("only-second here").Category; got != "Second" {
		t.Errorf("expected Second, got %s", got)
	}
}

func TestCategorize_CustomTable(t *testing.T) {
	c := New([]Rule{{Label: "Pets", Keywords: []string{"DOG", " Cat "}}}, []string{"Refund"})

	assertResult(t, c.Categorize("dog food refund"), "Pets", TypeIncome)
	assertResult(t, c.Categorize("cat litter"), "Pets", TypeExpense)
	assertResult(t, c.Categorize("groceries"), Fallback, TypeExpense)
}

func TestCategorize_EmptyKeywordsNeverMatch(t *testing.T) {
	c := New([]Rule{{Label: "Empty", Keywords: []string{""}}}, []string{""})

	assertResult(t, c.Categorize("anything"), Fallback, TypeExpense)
}

func TestNew_CopiesTables(t *testing.T) {
	rules := []Rule{{Label: "Food", Keywords: []string{"pizza"}}}
	income := []string{"salary"}
	c := New(rules, income)

	rules[0].Keywords[0] = "sushi"
	rules[0].Label = "Changed"
	income[0] = "nothing"

	assertResult(t, c.Categorize("pizza and salary"), "Food", TypeIncome)

	snapshot := c.Rules()
	snapshot[0].Keywords[0] = "mutated"
	if got := c.Categorize("pizza").Category; got != "Food" {
		t.Errorf("mutating Rules() leaked into the table: got %s", got)
	}
}

func TestCategorize_Idempotent(t *testing.T) {
	c := Default()
	first := c.Categorize("Almuerzo con clientes")
	for i := 0; i < 5; i++ {
		if got := c.Categorize("Almuerzo con clientes"); got != first {
			t.Fatalf("run %d: expected %+v, got %+v", i, first, got)
		}
	}
}

func TestCategorize_ConcurrentUse(t *testing.T) {
	c := Default()
	results := make([]Result, 16)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Categorize("Pago de sueldo mensual")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got.Category != "Ingresos" {
			t.Errorf("worker %d: expected Ingresos, got %s", i, got.Category)
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("valid table keeps order", func(t *testing.T) {
		data := []byte(`
income_keywords: [salary, bonus]
categories:
  - label: Food
    keywords: [lunch, dinner]
  - label: Work
    keywords: [salary, lunch]
`)
		c, err := Parse(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertResult(t, c.Categorize("Team lunch"), "Food", TypeExpense)
		assertResult(t, c.Categorize("Monthly salary"), "Work", TypeIncome)

		rules := c.Rules()
		if len(rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(rules))
		}
		if rules[0].Label != "Food" || rules[1].Label != "Work" {
			t.Errorf("expected order [Food Work], got [%s %s]", rules[0].Label, rules[1].Label)
		}
	})

	invalid := map[string]string{
		"no categories": "income_keywords: [salary]\n",
		"missing label": "categories:\n  - keywords: [x]\n",
		"invalid yaml":  "categories: [\n",
	}
	for name, data := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path returns default", func(t *testing.T) {
		c, err := LoadFile("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.Categorize("Pago de sueldo mensual").Category; got != "Ingresos" {
			t.Errorf("expected Ingresos, got %s", got)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte("categories:\n  - label: Coffee\n    keywords: [espresso]\n"), 0o600); err != nil {
			t.Fatalf("write rules: %v", err)
		}

		c, err := LoadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.Categorize("Double espresso").Category; got != "Coffee" {
			t.Errorf("expected Coffee, got %s", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error, got nil")
		}
	})
}
