package repository

import (
	"context"

	"expensetracker/internal/core"
	"expensetracker/internal/observe"
)

// ExpenseRepository is the domain-shaped facade over the persistent store.
// Watch methods return live sequences (initial snapshot plus one snapshot
// per data change, until ctx ends); the remaining methods are one-shot.
type ExpenseRepository interface {
	// WatchAll observes every expense, newest first.
	WatchAll(ctx context.Context) <-chan observe.Event[[]core.Expense]

	// WatchByCategory observes the expenses with an exact category match,
	// newest first.
	WatchByCategory(ctx context.Context, category string) <-chan observe.Event[[]core.Expense]

	// WatchCategories observes the distinct category strings present in
	// the store, ascending.
	WatchCategories(ctx context.Context) <-chan observe.Event[[]string]

	// GetByID returns the expense with the given id, or core.ErrNotFound.
	GetByID(ctx context.Context, id int64) (core.Expense, error)

	// Add persists a new expense and returns the assigned id.
	Add(ctx context.Context, e core.Expense) (int64, error)

	// Update replaces the stored expense with the same id.
	Update(ctx context.Context, e core.Expense) error

	// Delete removes the stored expense with the same id permanently.
	Delete(ctx context.Context, e core.Expense) error
}
