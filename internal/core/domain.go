package core

import (
	"errors"
	"sort"
	"time"
)

// Expense is the domain model used by business logic and the UI boundary.
// A zero ID means the expense has not been persisted yet; the store assigns
// the ID on insert. An empty Description means "no description".
type Expense struct {
	ID          int64
	Title       string
	Amount      float64
	Category    string
	Timestamp   time.Time
	Description string
}

// ErrNotFound is returned when a lookup by ID matches no stored expense.
var ErrNotFound = errors.New("expense not found")

// defaultCategories is the fixed category seed merged into every category
// read. Never persisted; reads always re-merge and re-sort.
var defaultCategories = []string{
	"Food",
	"Transport",
	"Entertainment",
	"Shopping",
	"Bills",
	"Health",
	"Education",
	"Other",
}

// DefaultCategories returns a copy of the fixed default category list.
func DefaultCategories() []string {
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// MergeCategories combines the default categories with the categories found
// in the store, removes duplicates and sorts lexicographically ascending.
// Matching is case-sensitive: "food" and "Food" stay distinct.
func MergeCategories(stored []string) []string {
	seen := make(map[string]struct{}, len(defaultCategories)+len(stored))
	merged := make([]string, 0, len(defaultCategories)+len(stored))
	for _, c := range defaultCategories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	for _, c := range stored {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	sort.Strings(merged)
	return merged
}
