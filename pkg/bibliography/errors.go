package bibliography

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInputNotFound = errors.New("input not found")
	ErrNotRegular    = errors.New("input is not a regular file")
	ErrEmptyInput    = errors.New("input has no header row")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformed     = errors.New("malformed input")
)

// LoadError provides structured error information for load failures.
type LoadError struct {
	Op     string // Operation that failed (e.g., "open", "header", "read")
	Source string // File path or redacted database target
	Column string // Column name, for header errors
	Row    int    // Data row, when known
	Cause  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("%s %s (column %s): %v", e.Op, e.Source, e.Column, e.Cause)
	case e.Row > 0:
		return fmt.Sprintf("%s %s (row %d): %v", e.Op, e.Source, e.Row, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// missingColumn builds the error for an absent header
func missingColumn(source, column string) error {
	return &LoadError{
		Op:     "header",
		Source: source,
		Column: column,
		Cause:  ErrMissingColumn,
	}
}
