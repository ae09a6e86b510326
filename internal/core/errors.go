package core

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID is unknown or the
// session has been evicted.
var ErrSessionNotFound = errors.New("session not found")

// ErrTooManySessions is returned when the session store is full.
var ErrTooManySessions = errors.New("too many active sessions")

// SchemaError reports a required column missing from an uploaded file.
// Processing of that upload halts; the column name is surfaced to the
// user so they can fix the export.
type SchemaError struct {
	Source Source
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s file: missing required column %q", e.Source, e.Column)
}

// ParseError reports an upload that could not be read as a spreadsheet
// of the expected format. The wrapped error carries the parser detail
// for the logs; clients only ever see the generic message.
type ParseError struct {
	Source Source
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s file: could not read file: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a (store, type) selection that matches no
// rows on either side. It is a distinct outcome from a comparison with
// no mismatches, and is surfaced as a visible empty state.
type ValidationError struct {
	Store         string
	InventoryType InventoryType
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("no matching data: neither file has %s inventory for store %q", e.InventoryType, e.Store)
}
