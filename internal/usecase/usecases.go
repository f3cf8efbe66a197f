// Package usecase holds the single-operation application logic wrappers
// around the repository. Each use case is stateless and idempotent: a
// failure simply propagates to the caller, there are no retries.
package usecase

import (
	"context"

	"expensetracker/internal/core"
	"expensetracker/internal/observe"
	"expensetracker/internal/repository"
)

// GetAllExpenses streams every expense, newest first.
type GetAllExpenses struct {
	repo repository.ExpenseRepository
}

func (uc GetAllExpenses) Execute(ctx context.Context) <-chan observe.Event[[]core.Expense] {
	return uc.repo.WatchAll(ctx)
}

// GetExpenseByID fetches one expense, or core.ErrNotFound.
type GetExpenseByID struct {
	repo repository.ExpenseRepository
}

func (uc GetExpenseByID) Execute(ctx context.Context, id int64) (core.Expense, error) {
	return uc.repo.GetByID(ctx, id)
}

// GetExpensesByCategory streams the expenses of one category, newest first.
type GetExpensesByCategory struct {
	repo repository.ExpenseRepository
}

func (uc GetExpensesByCategory) Execute(ctx context.Context, category string) <-chan observe.Event[[]core.Expense] {
	return uc.repo.WatchByCategory(ctx, category)
}

// GetAllCategories streams the category universe: on every emission the
// stored categories are merged with the defaults, deduplicated and sorted.
type GetAllCategories struct {
	repo repository.ExpenseRepository
}

func (uc GetAllCategories) Execute(ctx context.Context) <-chan observe.Event[[]string] {
	return observe.Map(ctx, uc.repo.WatchCategories(ctx), core.MergeCategories)
}

// AddExpense persists a new expense and returns the assigned id.
type AddExpense struct {
	repo repository.ExpenseRepository
}

func (uc AddExpense) Execute(ctx context.Context, e core.Expense) (int64, error) {
	return uc.repo.Add(ctx, e)
}

// UpdateExpense replaces a stored expense in place, keyed by its id.
type UpdateExpense struct {
	repo repository.ExpenseRepository
}

func (uc UpdateExpense) Execute(ctx context.Context, e core.Expense) error {
	return uc.repo.Update(ctx, e)
}

// DeleteExpense removes a stored expense permanently.
type DeleteExpense struct {
	repo repository.ExpenseRepository
}

func (uc DeleteExpense) Execute(ctx context.Context, e core.Expense) error {
	return uc.repo.Delete(ctx, e)
}

// UseCases bundles the seven use cases for one-time constructor wiring.
type UseCases struct {
	GetAllExpenses        GetAllExpenses
	GetExpenseByID        GetExpenseByID
	GetExpensesByCategory GetExpensesByCategory
	GetAllCategories      GetAllCategories
	AddExpense            AddExpense
	UpdateExpense         UpdateExpense
	DeleteExpense         DeleteExpense
}

func New(repo repository.ExpenseRepository) UseCases {
	return UseCases{
		GetAllExpenses:        GetAllExpenses{repo: repo},
		GetExpenseByID:        GetExpenseByID{repo: repo},
		GetExpensesByCategory: GetExpensesByCategory{repo: repo},
		GetAllCategories:      GetAllCategories{repo: repo},
		AddExpense:            AddExpense{repo: repo},
		UpdateExpense:         UpdateExpense{repo: repo},
		DeleteExpense:         DeleteExpense{repo: repo},
	}
}
