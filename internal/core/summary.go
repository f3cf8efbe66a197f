package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Total sums the amounts of the given expenses.
func Total(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalByCategory sums amounts per category, sorted by category name so the
// result is stable for display.
func TotalByCategory(expenses []Expense) []CategoryAmount {
	byName := make(map[string]float64)
	for _, e := range expenses {
		byName[e.Category] += e.Amount
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryAmount{Name: name, Amount: byName[name]})
	}
	return out
}
