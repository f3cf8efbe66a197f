// Package controller holds the view-state controllers behind the two
// screens. Each controller owns one observable state record: all
// transitions go through its Handle entry point, the UI subscribes to
// snapshots and never mutates state itself.
package controller

// fallbackError mirrors the message shown when a failure carries no text
// of its own.
const fallbackError = "An unexpected error occurred"

// errNotFoundMessage is the user-facing text for a lookup that matched no
// expense.
const errNotFoundMessage = "Expense not found"

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return fallbackError
	}
	return err.Error()
}
