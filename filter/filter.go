// Package filter implements composable, persistable row filters and the
// manager that applies them as an AND pipeline.
//
// Every filter fails open: misconfiguration, missing columns, bad regex
// patterns and unparsable dates all return the input row set unchanged with a
// logged diagnostic instead of raising.
package filter

import (
	"go.uber.org/zap"

	"chesttrack/config"
	"chesttrack/core"
)

// Filter is the capability shared by all filter variants.
type Filter interface {
	// ID returns the unique registration key, stable for the life of the
	// registration.
	ID() string
	// DisplayName returns the user-facing name.
	DisplayName() string
	// Enabled reports the enabled flag; filters start enabled.
	Enabled() bool
	// SetEnabled toggles the filter without touching its criteria.
	SetEnabled(enabled bool)
	// IsActive reports enabled AND criteria present.
	IsActive() bool
	// Apply returns the filtered subset as a new slice, never mutating the
	// input. Inactive or misconfigured filters return the input unchanged.
	Apply(rows core.Rows) core.Rows
	// Clear resets the criteria but not the enabled flag.
	Clear()
	// SaveState persists enabled flag and criteria into the store under the
	// filter's own section.
	SaveState(store config.Store)
	// LoadState restores enabled flag and criteria from the store.
	LoadState(store config.Store)
}

// Persisted state keys shared by all variants.
const (
	sectionPrefix = "Filter_"
	keyEnabled    = "enabled"
)

// base carries the identity and enabled flag common to all filter variants.
type base struct {
	id          string
	displayName string
	enabled     bool
	logger      *zap.SugaredLogger
}

func newBase(id, displayName string, logger *zap.SugaredLogger) base {
	return base{
		id:          id,
		displayName: displayName,
		enabled:     true,
		logger:      logger.Named("filter." + id),
	}
}

func (b *base) ID() string {
	return b.id
}

func (b *base) DisplayName() string {
	return b.displayName
}

func (b *base) Enabled() bool {
	return b.enabled
}

func (b *base) SetEnabled(enabled bool) {
	b.enabled = enabled
}

func (b *base) section() string {
	return sectionPrefix + b.id
}

func (b *base) saveBase(store config.Store) {
	store.SetValue(b.section(), keyEnabled, config.FormatBool(b.enabled))
}

func (b *base) loadBase(store config.Store) {
	b.enabled = config.ParseBool(store.GetValue(b.section(), keyEnabled, "True"))
}
