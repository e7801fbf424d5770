package storage

import "errors"

// Storage error constants
var (
	// ErrRuleNotFound is returned when a correction rule is not found
	ErrRuleNotFound = errors.New("correction rule not found")

	// ErrListNotFound is returned when a validation list has no entries
	ErrListNotFound = errors.New("validation list not found")

	// ErrEntryNotFound is returned when a validation list entry is not found
	ErrEntryNotFound = errors.New("validation entry not found")
)
