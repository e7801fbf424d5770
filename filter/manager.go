package filter

import (
	"strings"

	"go.uber.org/zap"

	"chesttrack/config"
	"chesttrack/core"
	"chesttrack/metrics"
)

// Persisted manager state.
const (
	managerSection   = "Filters"
	keyActiveFilters = "active_filters"
)

// Manager is an insertion-ordered filter registry. ApplyFilters runs the
// registered filters as a boolean AND pipeline in registration order,
// isolating failures per filter.
type Manager struct {
	order   []string
	filters map[string]Filter
	logger  *zap.SugaredLogger
}

// NewManager creates an empty manager.
func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		filters: make(map[string]Filter),
		logger:  logger.Named("filter.manager"),
	}
}

// Register adds a filter under its ID. Re-registering an existing ID replaces
// the filter in place, keeping its position in the application order; this is
// logged as a replacement, not an error.
func (m *Manager) Register(f Filter) {
	id := f.ID()
	if _, exists := m.filters[id]; exists {
		m.logger.Warnw("filter already registered, replacing", "filter_id", id)
	} else {
		m.order = append(m.order, id)
	}
	m.filters[id] = f
}

// Unregister removes a filter by ID.
func (m *Manager) Unregister(id string) {
	if _, exists := m.filters[id]; !exists {
		m.logger.Warnw("no filter registered under id", "filter_id", id)
		return
	}
	delete(m.filters, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the filter registered under id, or nil.
func (m *Manager) Get(id string) Filter {
	return m.filters[id]
}

// RegisteredIDs returns the filter IDs in registration order.
func (m *Manager) RegisteredIDs() []string {
	return append([]string(nil), m.order...)
}

// ApplyFilters runs every active filter over the row set in registration
// order, each filter narrowing the previous result. A filter that panics is
// logged and skipped, leaving the working set unchanged, so one bad filter
// cannot break the whole query.
func (m *Manager) ApplyFilters(rows core.Rows) core.Rows {
	result := rows.Clone()

	active := 0
	for _, id := range m.order {
		f := m.filters[id]
		if !f.IsActive() {
			continue
		}
		active++

		filtered, ok := m.applyOne(f, result)
		if !ok {
			continue
		}
		result = filtered
		m.logger.Debugw("filter applied",
			"filter_id", id, "remaining", len(result), "total", len(rows))
	}

	m.logger.Infow("filters applied",
		"active", active, "remaining", len(result), "total", len(rows))
	return result
}

// applyOne applies a single filter, converting a panic into a logged skip.
func (m *Manager) applyOne(f Filter, rows core.Rows) (result core.Rows, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorw("filter failed, skipping for this call",
				"filter_id", f.ID(), "panic", r)
			metrics.FilterFailures.WithLabelValues(f.ID()).Inc()
			result, ok = nil, false
		}
	}()

	metrics.FilterApplications.WithLabelValues(f.ID()).Inc()
	return f.Apply(rows), true
}

// ActiveFilterCount returns the number of filters reporting IsActive.
func (m *Manager) ActiveFilterCount() int {
	count := 0
	for _, f := range m.filters {
		if f.IsActive() {
			count++
		}
	}
	return count
}

// ActiveFilters returns the active filters in registration order.
func (m *Manager) ActiveFilters() []Filter {
	var active []Filter
	for _, id := range m.order {
		if f := m.filters[id]; f.IsActive() {
			active = append(active, f)
		}
	}
	return active
}

// ClearAllFilters clears every registered filter, including disabled ones.
func (m *Manager) ClearAllFilters() {
	for _, f := range m.filters {
		f.Clear()
	}
	m.logger.Debug("all filters cleared")
}

// SaveState persists every filter's state plus the registered ID list.
func (m *Manager) SaveState(store config.Store) {
	for _, id := range m.order {
		m.filters[id].SaveState(store)
	}
	store.SetValue(managerSection, keyActiveFilters, strings.Join(m.order, ","))
	m.logger.Debugw("saved filter state", "filters", len(m.order))
}

// LoadState restores every registered filter's state. Filters themselves are
// constructed by the host; IDs persisted under Filters.active_filters with no
// matching registration are logged and skipped.
func (m *Manager) LoadState(store config.Store) {
	for _, id := range m.order {
		m.filters[id].LoadState(store)
	}

	persisted := store.GetValue(managerSection, keyActiveFilters, "")
	if persisted != "" {
		for _, id := range strings.Split(persisted, ",") {
			if _, exists := m.filters[id]; !exists {
				m.logger.Warnw("persisted filter id has no registration", "filter_id", id)
			}
		}
	}

	m.logger.Debugw("loaded filter state",
		"filters", len(m.order), "active", m.ActiveFilterCount())
}
