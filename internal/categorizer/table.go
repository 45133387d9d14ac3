package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIncomeKeywords mark a description as income.
var DefaultIncomeKeywords = []string{
	"sueldo", "salario", "pago", "ingreso", "venta",
	"bonus", "ganancia", "reembolso", "comisión", "freelance",
}

// DefaultRules is the built-in category table, evaluated top to bottom.
var DefaultRules = []Rule{
	{Label: "Alimentacion", Keywords: []string{"café", "comida", "desayuno", "almuerzo", "cena", "restaurant"}},
	{Label: "Transporte", Keywords: []string{"taxi", "bus", "uber", "gasolina", "metro", "tren"}},
	{Label: "Entretenimiento", Keywords: []string{"cine", "película", "juego", "música", "bar", "pub"}},
	{Label: "Salud", Keywords: []string{"farmacia", "medicina", "doctor", "médico", "hospital", "gym"}},
	{Label: "Servicios", Keywords: []string{"internet", "teléfono", "electricidad", "agua", "gas"}},
	{Label: "Compras", Keywords: []string{"ropa", "zapatos", "tienda", "regalo", "amazon"}},
	{Label: "Ingresos", Keywords: DefaultIncomeKeywords},
}

// Default returns a Categorizer over the built-in tables.
func Default() *Categorizer {
	return New(DefaultRules, DefaultIncomeKeywords)
}

// File is the on-disk layout of a rule table.
//
//	income_keywords: [sueldo, pago]
//	categories:
//	  - label: Alimentacion
//	    keywords: [cena, comida]
type File struct {
	IncomeKeywords []string `yaml:"income_keywords"`
	Categories     []Rule   `yaml:"categories"`
}

// Parse decodes a YAML rule table.
func Parse(data []byte) (*Categorizer, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("rule table has no categories")
	}
	for i, r := range f.Categories {
		if r.Label == "" {
			return nil, fmt.Errorf("category %d has no label", i)
		}
	}
	return New(f.Categories, f.IncomeKeywords), nil
}

// LoadFile reads a YAML rule table from path. An empty path yields Default().
func LoadFile(path string) (*Categorizer, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}
	return Parse(data)
}
