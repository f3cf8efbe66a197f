package controller

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/observe"
	"expensetracker/internal/usecase"
)

// ListState is the observable state of the expense list screen.
type ListState struct {
	Expenses         []core.Expense
	Categories       []string
	SelectedCategory *string
	Total            float64
	IsLoading        bool
	Error            string
}

// ListController drives the expense list screen. It keeps two live
// subscriptions: the active expense load (all or filtered, swapped on
// every load event) and the category universe. Both end with the
// controller.
type ListController struct {
	uc     usecase.UseCases
	logger *applog.Logger
	hub    *observe.Hub

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	state          ListState
	cancelLoad     context.CancelFunc
	cancelCategory context.CancelFunc
	loadGen        uint64
	categoryGen    uint64
}

// NewListController wires a controller and starts the initial loads, the
// way the screen shows data as soon as it appears.
func NewListController(uc usecase.UseCases, logger *applog.Logger) *ListController {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &ListController{
		uc:     uc,
		logger: logger.WithComponent(applog.ComponentController),
		hub:    observe.NewHub(),
		ctx:    ctx,
		cancel: cancel,
	}
	c.Handle(LoadExpenses{})
	c.Handle(LoadCategories{})
	return c
}

// Close cancels every live subscription owned by the controller.
func (c *ListController) Close() {
	c.cancel()
}

// State returns the current state snapshot.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// WatchState lets the UI observe state snapshots: one immediately, then
// one after every change, until ctx ends.
func (c *ListController) WatchState(ctx context.Context) <-chan observe.Event[ListState] {
	return observe.Watch(ctx, c.hub, func(context.Context) (ListState, error) {
		return c.State(), nil
	})
}

// Handle dispatches one UI intent. It never blocks on I/O; loads and
// deletes run on background goroutines and publish their outcome through
// the state.
func (c *ListController) Handle(event ListEvent) {
	switch ev := event.(type) {
	case LoadExpenses:
		c.loadExpenses()
	case LoadCategories:
		c.loadCategories()
	case FilterByCategory:
		c.filterByCategory(ev.Category)
	case DeleteExpense:
		c.deleteExpense(ev.Expense)
	}
}

func (c *ListController) loadExpenses() {
	c.update(func(s *ListState) {
		s.IsLoading = true
		s.SelectedCategory = nil
	})
	c.watchExpenses(func(ctx context.Context) <-chan observe.Event[[]core.Expense] {
		return c.uc.GetAllExpenses.Execute(ctx)
	})
}

func (c *ListController) filterByCategory(category *string) {
	if category == nil {
		c.loadExpenses()
		return
	}
	cat := *category
	c.update(func(s *ListState) {
		s.IsLoading = true
		s.SelectedCategory = &cat
	})
	c.watchExpenses(func(ctx context.Context) <-chan observe.Event[[]core.Expense] {
		return c.uc.GetExpensesByCategory.Execute(ctx, cat)
	})
}

// watchExpenses swaps the active expense subscription for a new one. The
// generation guard drops emissions still in flight from a superseded
// subscription, so a cancelled load can never overwrite a newer one.
func (c *ListController) watchExpenses(open func(context.Context) <-chan observe.Event[[]core.Expense]) {
	c.mu.Lock()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelLoad = cancel
	c.loadGen++
	gen := c.loadGen
	c.mu.Unlock()

	events := open(ctx)
	go func() {
		for ev := range events {
			if ev.Err != nil {
				c.logger.ErrorContext(ctx, "expense load failed",
					applog.FieldOperation, applog.OpWatch,
					applog.FieldError, ev.Err)
				c.applyLoad(gen, func(s *ListState) {
					s.IsLoading = false
					s.Error = errMessage(ev.Err)
				})
				continue
			}
			expenses := ev.Value
			c.applyLoad(gen, func(s *ListState) {
				s.Expenses = expenses
				s.Total = core.Total(expenses)
				s.IsLoading = false
				s.Error = ""
			})
		}
	}()
}

func (c *ListController) applyLoad(gen uint64, mutate func(*ListState)) {
	c.mu.Lock()
	if gen != c.loadGen {
		c.mu.Unlock()
		return
	}
	mutate(&c.state)
	c.mu.Unlock()
	c.hub.Notify()
}

func (c *ListController) loadCategories() {
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
				c.applyCategories(gen, func(s *ListState) {
					s.Error = errMessage(ev.Err)
				})
				continue
			}
			categories := ev.Value
			c.applyCategories(gen, func(s *ListState) {
				s.Categories = categories
				s.Error = ""
			})
		}
	}()
}

func (c *ListController) applyCategories(gen uint64, mutate func(*ListState)) {
	c.mu.Lock()
	if gen != c.categoryGen {
		c.mu.Unlock()
		return
	}
	mutate(&c.state)
	c.mu.Unlock()
	c.hub.Notify()
}

func (c *ListController) deleteExpense(e core.Expense) {
	go func() {
		if err := c.uc.DeleteExpense.Execute(c.ctx, e); err != nil {
			c.logger.ErrorContext(c.ctx, "delete failed",
				applog.FieldOperation, applog.OpDelete,
				applog.FieldExpenseID, e.ID,
				applog.FieldError, err)
			c.update(func(s *ListState) {
				s.Error = errMessage(err)
			})
			return
		}
		// Re-run whichever load is active so the list reflects the
		// deletion even if the UI missed the store's own emission.
		if selected := c.State().SelectedCategory; selected != nil {
			c.filterByCategory(selected)
		} else {
			c.loadExpenses()
		}
	}()
}

func (c *ListController) update(mutate func(*ListState)) {
	c.mu.Lock()
	mutate(&c.state)
	c.mu.Unlock()
	c.hub.Notify()
}
