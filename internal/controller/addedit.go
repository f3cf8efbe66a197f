package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/observe"
	"expensetracker/internal/usecase"
)

// AddEditState is the observable state of the add/edit expense screen.
// Amount is kept as the raw input text; it only becomes a number once it
// validates. Empty error strings mean "no error".
type AddEditState struct {
	ID            int64
	Title         string
	TitleError    string
	Amount        string
	AmountError   string
	Category      string
	CategoryError string
	Description   string
	Timestamp     time.Time
	Categories    []string
	IsLoading     bool
	Error         string
	IsEditMode    bool
	IsSaved       bool
}

// AddEditController drives the add/edit expense screen: field validation,
// loading an existing expense for editing, and the save flow.
type AddEditController struct {
	uc     usecase.UseCases
	logger *applog.Logger
	hub    *observe.Hub

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	state          AddEditState
	cancelCategory context.CancelFunc
	categoryGen    uint64
}

// NewAddEditController wires a controller seeded with the default
// categories and today's date, and starts the category watch.
func NewAddEditController(uc usecase.UseCases, logger *applog.Logger) *AddEditController {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &AddEditController{
		uc:     uc,
		logger: logger.WithComponent(applog.ComponentController),
		hub:    observe.NewHub(),
		ctx:    ctx,
		cancel: cancel,
		state: AddEditState{
			Categories: core.DefaultCategories(),
			Timestamp:  time.Now(),
		},
	}
	c.Handle(LoadEditCategories{})
	return c
}

// Close cancels every live subscription owned by the controller.
func (c *AddEditController) Close() {
	c.cancel()
}

// State returns the current state snapshot.
func (c *AddEditController) State() AddEditState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// WatchState lets the UI observe state snapshots: one immediately, then
// one after every change, until ctx ends.
func (c *AddEditController) WatchState(ctx context.Context) <-chan observe.Event[AddEditState] {
	return observe.Watch(ctx, c.hub, func(context.Context) (AddEditState, error) {
		return c.State(), nil
	})
}

// Handle dispatches one UI intent. Field changes apply synchronously;
// loads and saves run on background goroutines.
func (c *AddEditController) Handle(event AddEditEvent) {
	switch ev := event.(type) {
	case LoadExpense:
		c.loadExpense(ev.ID)
	case LoadEditCategories:
		c.loadCategories()
	case TitleChanged:
		c.update(func(s *AddEditState) {
			s.Title = ev.Title
			s.TitleError = validateTitle(ev.Title)
		})
	case AmountChanged:
		c.update(func(s *AddEditState) {
			s.Amount = ev.Amount
			s.AmountError = validateAmount(ev.Amount)
		})
	case CategoryChanged:
		c.update(func(s *AddEditState) {
			s.Category = ev.Category
			s.CategoryError = validateCategory(ev.Category)
		})
	case DescriptionChanged:
		c.update(func(s *AddEditState) {
			s.Description = ev.Description
		})
	case DateChanged:
		c.update(func(s *AddEditState) {
			s.Timestamp = ev.Date
		})
	case SaveExpense:
		c.save()
	}
}

func (c *AddEditController) loadExpense(id int64) {
	c.update(func(s *AddEditState) {
		s.IsLoading = true
		s.IsEditMode = true
	})
	go func() {
		e, err := c.uc.GetExpenseByID.Execute(c.ctx, id)
		switch {
		case errors.Is(err, core.ErrNotFound):
			c.update(func(s *AddEditState) {
				s.IsLoading = false
				s.Error = errNotFoundMessage
			})
		case err != nil:
			c.logger.ErrorContext(c.ctx, "load expense failed",
				applog.FieldOperation, applog.OpGet,
				applog.FieldExpenseID, id,
				applog.FieldError, err)
			c.update(func(s *AddEditState) {
				s.IsLoading = false
				s.Error = errMessage(err)
			})
		default:
			c.update(func(s *AddEditState) {
				s.ID = e.ID
				s.Title = e.Title
				s.Amount = strconv.FormatFloat(e.Amount, 'f', -1, 64)
				s.Category = e.Category
				s.Description = e.Description
				s.Timestamp = e.Timestamp
				s.IsLoading = false
				s.Error = ""
			})
		}
	}()
}

func (c *AddEditController) loadCategories() {
	c.mu.Lock()
	if c.cancelCategory != nil {
		c.cancelCategory()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelCategory = cancel
	c.categoryGen++
	gen := c.categoryGen
	c.mu.Unlock()

	events := c.uc.GetAllCategories.Execute(ctx)
	go func() {
		for ev := range events {
			if ev.Err != nil {
				c.logger.ErrorContext(ctx, "category load failed",
					applog.FieldOperation, applog.OpWatch,
					applog.FieldError, ev.Err)
				c.applyCategories(gen, func(s *AddEditState) {
					s.Error = errMessage(ev.Err)
				})
				continue
			}
			categories := ev.Value
			c.applyCategories(gen, func(s *AddEditState) {
				s.Categories = categories
				s.Error = ""
			})
		}
	}()
}

func (c *AddEditController) applyCategories(gen uint64, mutate func(*AddEditState)) {
	c.mu.Lock()
	if gen != c.categoryGen {
		c.mu.Unlock()
		return
	}
	mutate(&c.state)
	c.mu.Unlock()
	c.hub.Notify()
}

func (c *AddEditController) save() {
	c.mu.Lock()
	c.state.TitleError = validateTitle(c.state.Title)
	c.state.AmountError = validateAmount(c.state.Amount)
	c.state.CategoryError = validateCategory(c.state.Category)
	valid := c.state.TitleError == "" && c.state.AmountError == "" && c.state.CategoryError == ""
	if valid {
		c.state.IsLoading = true
	}
	snapshot := c.state
	c.mu.Unlock()
	c.hub.Notify()

	if !valid {
		return
	}

	go func() {
		amount, _ := strconv.ParseFloat(strings.TrimSpace(snapshot.Amount), 64)
		e := core.Expense{
			ID:          snapshot.ID,
			Title:       snapshot.Title,
			Amount:      amount,
			Category:    snapshot.Category,
			Timestamp:   snapshot.Timestamp,
			Description: normalizeDescription(snapshot.Description),
		}

		var err error
		op := applog.OpAdd
		if snapshot.IsEditMode {
			op = applog.OpUpdate
			err = c.uc.UpdateExpense.Execute(c.ctx, e)
		} else {
			_, err = c.uc.AddExpense.Execute(c.ctx, e)
		}

		if err != nil {
			c.logger.ErrorContext(c.ctx, "save failed",
				applog.FieldOperation, op,
				applog.FieldTitle, e.Title,
				applog.FieldError, err)
			c.update(func(s *AddEditState) {
				s.IsLoading = false
				s.Error = errMessage(err)
			})
			return
		}

		c.update(func(s *AddEditState) {
			s.IsLoading = false
			s.Error = ""
			s.IsSaved = true
		})
	}()
}

func (c *AddEditController) update(mutate func(*AddEditState)) {
	c.mu.Lock()
	mutate(&c.state)
	c.mu.Unlock()
	c.hub.Notify()
}

func validateTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Title cannot be empty"
	}
	return ""
}

func validateAmount(amount string) string {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return "Amount cannot be empty"
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return "Amount must be a valid number"
	}
	if value <= 0 {
		return "Amount must be greater than zero"
	}
	return ""
}

func validateCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return "Category cannot be empty"
	}
	return ""
}

// normalizeDescription maps a blank description to "absent".
func normalizeDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	return description
}
