// Package taxonomy holds the category lists offered when entering a
// transaction. Categories are suggestions only; the ledger accepts any name.
package taxonomy

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"neotrack/internal/core"
)

// Taxonomy lists the categories for each transaction type.
type Taxonomy struct {
	Income  []string `yaml:"income" json:"income"`
	Expense []string `yaml:"expense" json:"expense"`
}

var (
	defaultIncome  = []string{"Salary", "Freelance", "Investments", "Gifts"}
	defaultExpense = []string{"Food", "Transport", "Housing", "Utilities", "Shopping", "Entertainment", "Health"}
)

// Default returns the built-in category lists.
func Default() Taxonomy {
	return Taxonomy{
		Income:  normalize(defaultIncome),
		Expense: normalize(defaultExpense),
	}
}

// Load reads a YAML file of the form
//
//	income: [Salary, Freelance]
//	expense: [Food, Transport]
//
// An empty path yields Default. A type missing from the file keeps its
// default list.
func Load(path string) (Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read categories file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Taxonomy, error) {
	var raw Taxonomy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to parse categories YAML: %w", err)
	}
	t := Default()
	if len(raw.Income) > 0 {
		t.Income = normalize(raw.Income)
	}
	if len(raw.Expense) > 0 {
		t.Expense = normalize(raw.Expense)
	}
	return t, nil
}

// For returns the categories for typ. Unknown types get the expense list.
func (t Taxonomy) For(typ core.Type) []string {
	if typ == core.Income {
		return append([]string(nil), t.Income...)
	}
	return append([]string(nil), t.Expense...)
}

// List satisfies the reader port used by the service layer.
func (t Taxonomy) List(_ context.Context) (Taxonomy, error) {
	return Taxonomy{Income: t.For(core.Income), Expense: t.For(core.Expense)}, nil
}

// normalize trims, dedupes and sorts names, then appends the default
// category last so it is always offered.
func normalize(in []string) []string {
	seen := map[string]struct{}{core.DefaultCategory: {}}
	out := make([]string, 0, len(in)+1)
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return append(out, core.DefaultCategory)
}
