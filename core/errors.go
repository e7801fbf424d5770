package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is the kind of RowError raised when a required import
	// column ("From", "To") is absent from a rule row.
	ErrMissingField = errors.New("missing field")

	// ErrEmptyValue is the kind of RowError raised when a required import
	// column is present but its value is empty.
	ErrEmptyValue = errors.New("empty value")
)

// RowError is a structured hard error produced while constructing a
// CorrectionRule from an external ingestion row. The ingestion collaborator
// surfaces it to the user verbatim; valid rows in the same import still
// succeed.
type RowError struct {
	Row    int
	Column string
	Kind   error
}

func (e *RowError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("row %d: missing %q column", e.Row, e.Column)
	case ErrEmptyValue:
		return fmt.Sprintf("row %d: %q value cannot be empty", e.Row, e.Column)
	default:
		return fmt.Sprintf("row %d: invalid %q value", e.Row, e.Column)
	}
}

func (e *RowError) Unwrap() error {
	return e.Kind
}
