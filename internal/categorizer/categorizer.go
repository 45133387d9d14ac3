// Package categorizer classifies a transaction description into a category
// label and an income/expense type using keyword tables.
package categorizer

import "strings"

// Fallback is returned when no category rule matches.
const Fallback = "Otros"

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Rule maps a category label to the keywords that trigger it.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Result is the outcome of classifying one description.
type Result struct {
	Category string
	Type     Type
}

// Categorizer holds an immutable, ordered rule table. It is safe for
// concurrent use.
type Categorizer struct {
	rules  []Rule
	income []string
}

// New builds a Categorizer from an ordered rule table and the income keyword
// list. Both are copied and lower-cased; later changes to the arguments do
// not affect the Categorizer.
func New(rules []Rule, incomeKeywords []string) *Categorizer {
	c := &Categorizer{
		rules:  make([]Rule, 0, len(rules)),
		income: lowerAll(incomeKeywords),
	}
	for _, r := range rules {
		c.rules = append(c.rules, Rule{Label: r.Label, Keywords: lowerAll(r.Keywords)})
	}
	return c
}

// Categorize never fails. The type is income when any income keyword occurs
// in the description; the category is the first rule, in declaration order,
// with a matching keyword. Type and category are decided independently.
func (c *Categorizer) Categorize(description string) Result {
	desc := strings.ToLower(description)

	result := Result{Category: Fallback, Type: TypeExpense}
	if containsAny(desc, c.income) {
		result.Type = TypeIncome
	}
	for _, r := range c.rules {
		if containsAny(desc, r.Keywords) {
			result.Category = r.Label
			break
		}
	}
	return result
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Label: r.Label, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
