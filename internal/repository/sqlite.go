package repository

import (
	"context"

	"expensetracker/internal/core"
	"expensetracker/internal/observe"
	"expensetracker/internal/storage"
)

// SQLiteRepository composes the store and the record mapper. Live
// sequences keep the store's emission semantics; only the element shape
// changes.
type SQLiteRepository struct {
	store *storage.Store
}

var _ ExpenseRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(store *storage.Store) *SQLiteRepository {
	return &SQLiteRepository{store: store}
}

func (r *SQLiteRepository) WatchAll(ctx context.Context) <-chan observe.Event[[]core.Expense] {
	return observe.Map(ctx, r.store.ObserveAll(ctx), storage.ToDomainList)
}

func (r *SQLiteRepository) WatchByCategory(ctx context.Context, category string) <-chan observe.Event[[]core.Expense] {
	return observe.Map(ctx, r.store.ObserveByCategory(ctx, category), storage.ToDomainList)
}

func (r *SQLiteRepository) WatchCategories(ctx context.Context) <-chan observe.Event[[]string] {
	return r.store.ObserveDistinctCategories(ctx)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	rec, err := r.store.FindByID(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	return storage.ToDomain(rec), nil
}

func (r *SQLiteRepository) Add(ctx context.Context, e core.Expense) (int64, error) {
	return r.store.Insert(ctx, storage.ToRecord(e))
}

func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	return r.store.Update(ctx, storage.ToRecord(e))
}

func (r *SQLiteRepository) Delete(ctx context.Context, e core.Expense) error {
	return r.store.Delete(ctx, storage.ToRecord(e))
}
