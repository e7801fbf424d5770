// Package config provides the namespaced key/value store contract that filter
// state persistence relies on, with an in-memory implementation for tests and
// embedding and a viper-backed implementation for file-based settings.
package config

import "strings"

// Store is a namespaced key/value store. Values are plain strings; booleans
// travel in their "True"/"False" wire form (see FormatBool). Implementations
// are not required to be safe for concurrent use.
type Store interface {
	// GetValue returns the value at section/key, or fallback when unset.
	GetValue(section, key, fallback string) string
	// SetValue stores value at section/key, replacing any previous value.
	SetValue(section, key, value string)
	// RemoveValue deletes section/key if present.
	RemoveValue(section, key string)
	// HasValue reports whether section/key is set.
	HasValue(section, key string) bool
}

// FormatBool renders a bool in the persisted wire form.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBool reads the persisted wire form back, case-insensitively. Anything
// other than "true" is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
