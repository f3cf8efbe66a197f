package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/observe"

	_ "modernc.org/sqlite"
)

// Store is the durable expenses table plus its observable-query layer.
// Every successful mutation invalidates all live queries, which then
// requery and emit a full, consistently ordered snapshot.
type Store struct {
	db      *sql.DB
	queries *Queries
	hub     *observe.Hub
	logger  *applog.Logger
}

// NewStore opens (creating if needed) the SQLite database at dbPath and
// brings the schema up to date.
func NewStore(dbPath string, logger *applog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and in-memory
	// databases exist per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	return &Store{
		db:      db,
		queries: NewQueries(db),
		hub:     observe.NewHub(),
		logger:  logger.WithComponent(applog.ComponentStorage),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Insert inserts a new row, or replaces the row with the same id, and
// returns the assigned id.
func (s *Store) Insert(ctx context.Context, rec ExpenseRecord) (int64, error) {
	id, err := s.queries.InsertExpense(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	s.logger.InfoContext(ctx, "expense saved",
		applog.FieldExpenseID, id,
		applog.FieldTitle, rec.Title,
		applog.FieldAmount, rec.Amount,
		applog.FieldCategory, rec.Category)

	s.hub.Notify()
	return id, nil
}

// Update replaces the row matching rec.ID in place. Updating a missing row
// is a no-op; the caller is expected to pass a valid id.
func (s *Store) Update(ctx context.Context, rec ExpenseRecord) error {
	if err := s.queries.UpdateExpense(ctx, rec); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	s.logger.InfoContext(ctx, "expense updated", applog.FieldExpenseID, rec.ID)

	s.hub.Notify()
	return nil
}

// Delete removes the row matching rec.ID permanently.
func (s *Store) Delete(ctx context.Context, rec ExpenseRecord) error {
	if err := s.queries.DeleteExpense(ctx, rec.ID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.logger.InfoContext(ctx, "expense deleted", applog.FieldExpenseID, rec.ID)

	s.hub.Notify()
	return nil
}

// FindByID returns the row with the given id, or core.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id int64) (ExpenseRecord, error) {
	rec, err := s.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ExpenseRecord{}, core.ErrNotFound
	}
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("get expense by id: %w", err)
	}
	return rec, nil
}

// ObserveAll returns a live sequence of all rows ordered by timestamp
// descending. The sequence delivers an initial snapshot and then a fresh
// one after every mutation, until ctx ends.
func (s *Store) ObserveAll(ctx context.Context) <-chan observe.Event[[]ExpenseRecord] {
	return observe.Watch(ctx, s.hub, s.queries.GetAllExpenses)
}

// ObserveByCategory returns a live sequence of the rows with an exact
// category match, same ordering as ObserveAll.
func (s *Store) ObserveByCategory(ctx context.Context, category string) <-chan observe.Event[[]ExpenseRecord] {
	return observe.Watch(ctx, s.hub, func(ctx context.Context) ([]ExpenseRecord, error) {
		return s.queries.GetExpensesByCategory(ctx, category)
	})
}

// ObserveDistinctCategories returns a live sequence of the distinct
// category strings present in the table, ascending.
func (s *Store) ObserveDistinctCategories(ctx context.Context) <-chan observe.Event[[]string] {
	return observe.Watch(ctx, s.hub, s.queries.GetDistinctCategories)
}
