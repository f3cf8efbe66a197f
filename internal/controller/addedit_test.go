package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEditControllerStartsWithDefaults(t *testing.T) {
	uc, _ := newTestStack(t)

	c := NewAddEditController(uc, nil)
	defer c.Close()

	s := c.State()
	assert.False(t, s.IsEditMode)
	assert.False(t, s.IsSaved)
	assert.NotEmpty(t, s.Categories)
	assert.False(t, s.Timestamp.IsZero(), "date defaults to creation time")
}

func TestFieldValidationOnChange(t *testing.T) {
	uc, _ := newTestStack(t)
	c := NewAddEditController(uc, nil)
	defer c.Close()

	c.Handle(TitleChanged{Title: "   "})
	assert.Equal(t, "Title cannot be empty", c.State().TitleError)
	c.Handle(TitleChanged{Title: "Coffee"})
	assert.Empty(t, c.State().TitleError)

	c.Handle(AmountChanged{Amount: "abc"})
	assert.Equal(t, "Amount must be a valid number", c.State().AmountError)
	c.Handle(AmountChanged{Amount: "-5"})
	assert.Equal(t, "Amount must be greater than zero", c.State().AmountError)
	c.Handle(AmountChanged{Amount: ""})
	assert.Equal(t, "Amount cannot be empty", c.State().AmountError)
	c.Handle(AmountChanged{Amount: "4.50"})
	assert.Empty(t, c.State().AmountError)

	c.Handle(CategoryChanged{Category: ""})
	assert.Equal(t, "Category cannot be empty", c.State().CategoryError)
	c.Handle(CategoryChanged{Category: "Food"})
	assert.Empty(t, c.State().CategoryError)
}

func TestSaveGatingNeverWritesInvalidExpense(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		amount    string
		wantField func(AddEditState) string
		wantMsg   string
	}{
		{
			name:      "blank title",
			title:     "",
			amount:    "4.50",
			wantField: func(s AddEditState) string { return s.TitleError },
			wantMsg:   "Title cannot be empty",
		},
		{
			name:      "non-numeric amount",
			title:     "Coffee",
			amount:    "abc",
			wantField: func(s AddEditState) string { return s.AmountError },
			wantMsg:   "Amount must be a valid number",
		},
		{
			name:      "negative amount",
			title:     "Coffee",
			amount:    "-5",
			wantField: func(s AddEditState) string { return s.AmountError },
			wantMsg:   "Amount must be greater than zero",
		},
		{
			name:      "zero amount",
			title:     "Coffee",
			amount:    "0",
			wantField: func(s AddEditState) string { return s.AmountError },
			wantMsg:   "Amount must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newTestStack(t)
			c := NewAddEditController(uc, nil)
			defer c.Close()

			c.Handle(TitleChanged{Title: tt.title})
			c.Handle(AmountChanged{Amount: tt.amount})
			c.Handle(CategoryChanged{Category: "Food"})
			c.Handle(SaveExpense{})

			s := c.State()
			assert.Equal(t, tt.wantMsg, tt.wantField(s))
			assert.False(t, s.IsSaved)
			assert.False(t, s.IsLoading, "aborted save must not flip the loading flag")

			// No write may ever reach the store.
			time.Sleep(50 * time.Millisecond)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			ev := <-repo.WatchAll(ctx)
			require.NoError(t, ev.Err)
			assert.Empty(t, ev.Value)
		})
	}
}

func TestSaveNewExpense(t *testing.T) {
	uc, repo := newTestStack(t)
	c := NewAddEditController(uc, nil)
	defer c.Close()

	when := time.UnixMilli(1724932800000)
	c.Handle(TitleChanged{Title: "Coffee"})
	c.Handle(AmountChanged{Amount: "4.50"})
	c.Handle(CategoryChanged{Category: "Food"})
	c.Handle(DateChanged{Date: when})
	c.Handle(DescriptionChanged{Description: "   "})
	c.Handle(SaveExpense{})

	require.Eventually(t, func() bool {
		s := c.State()
		return s.IsSaved && !s.IsLoading && s.Error == ""
	}, waitFor, tick)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ev := <-repo.WatchAll(ctx)
	require.NoError(t, ev.Err)
	require.Len(t, ev.Value, 1)
	got := ev.Value[0]
	assert.Positive(t, got.ID)
	assert.Equal(t, "Coffee", got.Title)
	assert.Equal(t, 4.50, got.Amount)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, when, got.Timestamp)
	assert.Empty(t, got.Description, "blank description saves as absent")
}

func TestEditFlowPreservesID(t *testing.T) {
	uc, repo := newTestStack(t)
	id := seedExpense(t, repo, "Coffee", 4.50, "Food", 1000)

	c := NewAddEditController(uc, nil)
	defer c.Close()

	c.Handle(LoadExpense{ID: id})

	require.Eventually(t, func() bool {
		s := c.State()
		return !s.IsLoading && s.Title == "Coffee"
	}, waitFor, tick)

	s := c.State()
	assert.True(t, s.IsEditMode)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "4.5", s.Amount, "amount renders as text for editing")
	assert.Equal(t, "Food", s.Category)

	c.Handle(TitleChanged{Title: "Espresso"})
	c.Handle(SaveExpense{})

	require.Eventually(t, func() bool {
		return c.State().IsSaved
	}, waitFor, tick)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", stored.Title)
	assert.Equal(t, id, stored.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ev := <-repo.WatchAll(ctx)
	require.NoError(t, ev.Err)
	assert.Len(t, ev.Value, 1, "edit must not create a second row")
}

func TestLoadExpenseNotFound(t *testing.T) {
	uc, _ := newTestStack(t)
	c := NewAddEditController(uc, nil)
	defer c.Close()

	c.Handle(LoadExpense{ID: 999})

	require.Eventually(t, func() bool {
		s := c.State()
		return s.Error == "Expense not found" && !s.IsLoading
	}, waitFor, tick)

	s := c.State()
	assert.Empty(t, s.Title, "no field populated from a phantom record")
	assert.Empty(t, s.Amount)
	assert.Empty(t, s.Category)
}

func TestCategoriesRefreshAfterSave(t *testing.T) {
	uc, _ := newTestStack(t)
	c := NewAddEditController(uc, nil)
	defer c.Close()

	require.Eventually(t, func() bool {
		return len(c.State().Categories) == 8
	}, waitFor, tick)

	c.Handle(TitleChanged{Title: "Veggies"})
	c.Handle(AmountChanged{Amount: "20"})
	c.Handle(CategoryChanged{Category: "Groceries"})
	c.Handle(SaveExpense{})

	require.Eventually(t, func() bool {
		return len(c.State().Categories) == 9
	}, waitFor, tick, "category universe picks up the new stored category")
	assert.Contains(t, c.State().Categories, "Groceries")
}
