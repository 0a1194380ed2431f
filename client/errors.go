package client

import "fmt"

// The backend reports a missing relation with the postgres undefined_table
// code. A fresh project may not have every table provisioned yet, so callers
// treat this as "no rows" rather than a failure.
const codeUndefinedTable = "42P01"

// Error is a typed backend failure carrying the HTTP status and, when the
// backend supplies one, its error code.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// MissingRelation reports whether the queried table does not exist.
func (e *Error) MissingRelation() bool {
	return e.Code == codeUndefinedTable
}
