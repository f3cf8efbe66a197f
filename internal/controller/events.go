package controller

import (
	"time"

	"expensetracker/internal/core"
)

// ListEvent is the closed set of intents the list screen can dispatch.
type ListEvent interface{ isListEvent() }

type LoadExpenses struct{}

// FilterByCategory narrows the list to one category. A nil Category clears
// the filter and behaves like LoadExpenses.
type FilterByCategory struct{ Category *string }

type LoadCategories struct{}

type DeleteExpense struct{ Expense core.Expense }

func (LoadExpenses) isListEvent()     {}
func (FilterByCategory) isListEvent() {}
func (LoadCategories) isListEvent()   {}
func (DeleteExpense) isListEvent()    {}

// AddEditEvent is the closed set of intents the add/edit screen can
// dispatch. Field-changed events revalidate their field immediately.
type AddEditEvent interface{ isAddEditEvent() }

type LoadExpense struct{ ID int64 }

type LoadEditCategories struct{}

type TitleChanged struct{ Title string }

type AmountChanged struct{ Amount string }

type CategoryChanged struct{ Category string }

type DescriptionChanged struct{ Description string }

type DateChanged struct{ Date time.Time }

type SaveExpense struct{}

func (LoadExpense) isAddEditEvent()        {}
func (LoadEditCategories) isAddEditEvent() {}
func (TitleChanged) isAddEditEvent()       {}
func (AmountChanged) isAddEditEvent()      {}
func (CategoryChanged) isAddEditEvent()    {}
func (DescriptionChanged) isAddEditEvent() {}
func (DateChanged) isAddEditEvent()        {}
func (SaveExpense) isAddEditEvent()        {}
