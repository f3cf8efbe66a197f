package storage

import (
	"database/sql"
	"time"

	"expensetracker/internal/core"
)

// ExpenseRecord is the row shape of the expenses table. Timestamps are
// stored as millisecond instants; a NULL description models "no
// description".
type ExpenseRecord struct {
	ID          int64
	Title       string
	Amount      float64
	Category    string
	Timestamp   int64
	Description sql.NullString
}

// ToDomain converts a stored row into the domain model. Pure and total:
// no validation, no failure mode.
func ToDomain(rec ExpenseRecord) core.Expense {
	e := core.Expense{
		ID:        rec.ID,
		Title:     rec.Title,
		Amount:    rec.Amount,
		Category:  rec.Category,
		Timestamp: time.UnixMilli(rec.Timestamp),
	}
	if rec.Description.Valid {
		e.Description = rec.Description.String
	}
	return e
}

// ToRecord converts a domain expense into its row shape.
func ToRecord(e core.Expense) ExpenseRecord {
	rec := ExpenseRecord{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Timestamp: e.Timestamp.UnixMilli(),
	}
	if e.Description != "" {
		rec.Description = sql.NullString{String: e.Description, Valid: true}
	}
	return rec
}

// ToDomainList converts a result set row by row, preserving order.
func ToDomainList(recs []ExpenseRecord) []core.Expense {
	out := make([]core.Expense, len(recs))
	for i, rec := range recs {
		out[i] = ToDomain(rec)
	}
	return out
}
