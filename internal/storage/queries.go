package storage

import (
	"context"
	"database/sql"
)

const (
	insertExpense = `INSERT OR REPLACE INTO expenses (id, title, amount, category, timestamp, description)
VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?)`

	updateExpense = `UPDATE expenses
SET title = ?, amount = ?, category = ?, timestamp = ?, description = ?
WHERE id = ?`

	deleteExpense = `DELETE FROM expenses WHERE id = ?`

	selectExpense = `SELECT id, title, amount, category, timestamp, description
FROM expenses WHERE id = ?`

	selectAllExpenses = `SELECT id, title, amount, category, timestamp, description
FROM expenses ORDER BY timestamp DESC`

	selectExpensesByCategory = `SELECT id, title, amount, category, timestamp, description
FROM expenses WHERE category = ? ORDER BY timestamp DESC`

	selectDistinctCategories = `SELECT DISTINCT category FROM expenses ORDER BY category ASC`
)

// Queries holds the parameterized statements of the expenses table.
type Queries struct {
	db *sql.DB
}

// NewQueries binds the statement set to a database handle.
func NewQueries(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// InsertExpense inserts a row, or replaces the row with the same id, and
// returns the assigned id. A zero record id lets the store pick the next id.
func (q *Queries) InsertExpense(ctx context.Context, rec ExpenseRecord) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertExpense,
		rec.ID, rec.Title, rec.Amount, rec.Category, rec.Timestamp, rec.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateExpense replaces the row matching the record id. Updating a missing
// row is a no-op.
func (q *Queries) UpdateExpense(ctx context.Context, rec ExpenseRecord) error {
	_, err := q.db.ExecContext(ctx, updateExpense,
		rec.Title, rec.Amount, rec.Category, rec.Timestamp, rec.Description, rec.ID)
	return err
}

// DeleteExpense removes the row matching the record id.
func (q *Queries) DeleteExpense(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteExpense, id)
	return err
}

// GetExpense returns the row with the given id, or sql.ErrNoRows.
func (q *Queries) GetExpense(ctx context.Context, id int64) (ExpenseRecord, error) {
	row := q.db.QueryRowContext(ctx, selectExpense, id)
	var rec ExpenseRecord
	err := row.Scan(&rec.ID, &rec.Title, &rec.Amount, &rec.Category, &rec.Timestamp, &rec.Description)
	return rec, err
}

// GetAllExpenses returns every row, newest first.
func (q *Queries) GetAllExpenses(ctx context.Context) ([]ExpenseRecord, error) {
	rows, err := q.db.QueryContext(ctx, selectAllExpenses)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// GetExpensesByCategory returns the rows with an exact category match,
// newest first.
func (q *Queries) GetExpensesByCategory(ctx context.Context, category string) ([]ExpenseRecord, error) {
	rows, err := q.db.QueryContext(ctx, selectExpensesByCategory, category)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// GetDistinctCategories returns the distinct category strings present in
// the table, ascending.
func (q *Queries) GetDistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, selectDistinctCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanExpenses(rows *sql.Rows) ([]ExpenseRecord, error) {
	defer rows.Close()

	var recs []ExpenseRecord
	for rows.Next() {
		var rec ExpenseRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Amount, &rec.Category, &rec.Timestamp, &rec.Description); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
