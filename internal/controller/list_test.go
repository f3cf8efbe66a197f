package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
	"expensetracker/internal/repository"
	"expensetracker/internal/storage"
	"expensetracker/internal/usecase"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func newTestStack(t *testing.T) (usecase.UseCases, repository.ExpenseRepository) {
	t.Helper()
	store, err := storage.NewStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	repo := repository.NewSQLiteRepository(store)
	return usecase.New(repo), repo
}

func seedExpense(t *testing.T, repo repository.ExpenseRepository, title string, amount float64, category string, ts int64) int64 {
	t.Helper()
	id, err := repo.Add(context.Background(), core.Expense{
		Title:     title,
		Amount:    amount,
		Category:  category,
		Timestamp: time.UnixMilli(ts),
	})
	require.NoError(t, err)
	return id
}

func TestListControllerLoadsExpensesNewestFirst(t *testing.T) {
	uc, repo := newTestStack(t)
	seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)
	seedExpense(t, repo, "Bus", 2.00, "Transport", 2000)

	c := NewListController(uc, nil)
	defer c.Close()

	require.Eventually(t, func() bool {
		s := c.State()
		return len(s.Expenses) == 2 && !s.IsLoading && s.Error == ""
	}, waitFor, tick)

	s := c.State()
	assert.Equal(t, "Bus", s.Expenses[0].Title, "newest first")
	assert.Equal(t, "Coffee", s.Expenses[1].Title)
	assert.InDelta(t, 6.50, s.Total, 1e-9)
}

func TestListControllerSeesNewExpense(t *testing.T) {
	uc, repo := newTestStack(t)

	c := NewListController(uc, nil)
	defer c.Close()

	require.Eventually(t, func() bool {
		s := c.State()
		return !s.IsLoading && s.Error == ""
	}, waitFor, tick)

	id := seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)

	require.Eventually(t, func() bool {
		return len(c.State().Expenses) == 1
	}, waitFor, tick, "live sequence must re-emit after a write")

	e := c.State().Expenses[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "Coffee", e.Title)
	assert.Equal(t, 4.50, e.Amount)
	assert.Equal(t, "Food", e.Category)
	assert.Equal(t, time.UnixMilli(1000), e.Timestamp)
}

func TestListControllerFilterByCategory(t *testing.T) {
	uc, repo := newTestStack(t)
	seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)
	seedExpense(t, repo, "Bus", 2.00, "Transport", 2000)

	c := NewListController(uc, nil)
	defer c.Close()

	food := "Food"
	c.Handle(FilterByCategory{Category: &food})

	require.Eventually(t, func() bool {
		s := c.State()
		return len(s.Expenses) == 1 && s.Expenses[0].Category == "Food" && !s.IsLoading
	}, waitFor, tick)
	require.NotNil(t, c.State().SelectedCategory)
	assert.Equal(t, "Food", *c.State().SelectedCategory)

	c.Handle(FilterByCategory{Category: nil})

	require.Eventually(t, func() bool {
		s := c.State()
		return len(s.Expenses) == 2 && s.SelectedCategory == nil
	}, waitFor, tick, "clearing the filter behaves like LoadExpenses")
}

func TestListControllerDeleteWhileFiltered(t *testing.T) {
	uc, repo := newTestStack(t)
	foodID := seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)
	seedExpense(t, repo, "Bus", 2.00, "Transport", 2000)

	c := NewListController(uc, nil)
	defer c.Close()

	food := "Food"
	c.Handle(FilterByCategory{Category: &food})
	require.Eventually(t, func() bool {
		return len(c.State().Expenses) == 1
	}, waitFor, tick)

	c.Handle(DeleteExpense{Expense: core.Expense{ID: foodID}})

	require.Eventually(t, func() bool {
		s := c.State()
		return len(s.Expenses) == 0 && s.Error == ""
	}, waitFor, tick, "filtered view empties after deleting its only member")

	c.Handle(FilterByCategory{Category: nil})
	require.Eventually(t, func() bool {
		s := c.State()
		return len(s.Expenses) == 1 && s.Expenses[0].Category == "Transport"
	}, waitFor, tick, "unfiltered view keeps the remaining expense")
}

func TestListControllerMergesCategoriesIntoState(t *testing.T) {
	uc, repo := newTestStack(t)
	seedExpense(t, repo, "Veggies", 20.00, "Groceries", 1000)

	c := NewListController(uc, nil)
	defer c.Close()

	require.Eventually(t, func() bool {
		return len(c.State().Categories) == 9
	}, waitFor, tick, "8 defaults plus one stored category")

	cats := c.State().Categories
	assert.Contains(t, cats, "Groceries")
	assert.Contains(t, cats, "Food")
}

func TestListControllerWatchState(t *testing.T) {
	uc, repo := newTestStack(t)

	c := NewListController(uc, nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	states := c.WatchState(ctx)

	first := <-states
	require.NoError(t, first.Err)

	seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)

	require.Eventually(t, func() bool {
		select {
		case ev := <-states:
			return ev.Err == nil && len(ev.Value.Expenses) == 1
		default:
			return false
		}
	}, waitFor, tick, "UI subscribers re-render on state changes")
}
