package filter

import (
	"time"

	"go.uber.org/zap"

	"chesttrack/config"
	"chesttrack/core"
)

// DefaultDateLayout is the Go reference layout used to parse and persist
// date values when none is configured.
const DefaultDateLayout = "2006-01-02"

// DateFilter keeps rows whose date column falls inside an inclusive range.
// Either bound may be absent.
type DateFilter struct {
	base

	columnName string
	startDate  *time.Time
	endDate    *time.Time
	layout     string
}

// NewDateFilter creates a date filter over the named column with no bounds
// set and the default layout.
func NewDateFilter(id, displayName, columnName string, logger *zap.SugaredLogger) *DateFilter {
	return &DateFilter{
		base:       newBase(id, displayName, logger),
		columnName: columnName,
		layout:     DefaultDateLayout,
	}
}

// ColumnName returns the column this filter operates on.
func (f *DateFilter) ColumnName() string {
	return f.columnName
}

// SetLayout replaces the date layout used for parsing and persistence.
func (f *DateFilter) SetLayout(layout string) {
	if layout != "" {
		f.layout = layout
	}
}

// Layout returns the current date layout.
func (f *DateFilter) Layout() string {
	return f.layout
}

// SetRange sets both bounds at once; nil leaves a bound open.
func (f *DateFilter) SetRange(start, end *time.Time) {
	f.startDate = copyTime(start)
	f.endDate = copyTime(end)
}

// SetRangeStrings parses both bounds with the configured layout. Empty
// strings leave the bound open; a malformed bound string is an error and
// leaves the filter unchanged.
func (f *DateFilter) SetRangeStrings(start, end string) error {
	var startDate, endDate *time.Time

	if start != "" {
		t, err := time.Parse(f.layout, start)
		if err != nil {
			return err
		}
		startDate = &t
	}
	if end != "" {
		t, err := time.Parse(f.layout, end)
		if err != nil {
			return err
		}
		endDate = &t
	}

	f.startDate = startDate
	f.endDate = endDate
	return nil
}

// StartDate returns the start bound, or nil.
func (f *DateFilter) StartDate() *time.Time {
	return copyTime(f.startDate)
}

// EndDate returns the end bound, or nil.
func (f *DateFilter) EndDate() *time.Time {
	return copyTime(f.endDate)
}

// IsActive reports enabled with at least one bound set.
func (f *DateFilter) IsActive() bool {
	return f.enabled && (f.startDate != nil || f.endDate != nil)
}

// Clear drops both bounds.
func (f *DateFilter) Clear() {
	f.startDate = nil
	f.endDate = nil
}

// Apply keeps rows whose parsed column value satisfies both present bounds,
// inclusively. The whole column must coerce to dates: any cell that fails to
// parse fails the call open and the input is returned unchanged.
func (f *DateFilter) Apply(rows core.Rows) core.Rows {
	if !f.IsActive() {
		return rows
	}
	if !rows.HasColumn(f.columnName) {
		f.logger.Debugw("column not present, passing rows through", "column", f.columnName)
		return rows
	}

	parsed := make([]time.Time, len(rows))
	for i, row := range rows {
		value, present := row[f.columnName]
		if !present {
			f.logger.Warnw("row missing date column, passing rows through",
				"column", f.columnName, "row", i)
			return rows
		}
		t, err := time.Parse(f.layout, value)
		if err != nil {
			f.logger.Warnw("unparsable date value, passing rows through",
				"column", f.columnName, "value", value, "error", err)
			return rows
		}
		parsed[i] = t
	}

	result := make(core.Rows, 0, len(rows))
	for i, row := range rows {
		t := parsed[i]
		if f.startDate != nil && t.Before(*f.startDate) {
			continue
		}
		if f.endDate != nil && t.After(*f.endDate) {
			continue
		}
		result = append(result, row)
	}
	return result
}

// Persisted state keys.
const (
	keyStartDate = "start_date"
	keyEndDate   = "end_date"
)

// SaveState persists the bounds formatted with the configured layout; unset
// bounds are removed from the store.
func (f *DateFilter) SaveState(store config.Store) {
	f.saveBase(store)

	section := f.section()
	if f.startDate != nil {
		store.SetValue(section, keyStartDate, f.startDate.Format(f.layout))
	} else {
		store.RemoveValue(section, keyStartDate)
	}
	if f.endDate != nil {
		store.SetValue(section, keyEndDate, f.endDate.Format(f.layout))
	} else {
		store.RemoveValue(section, keyEndDate)
	}
}

// LoadState restores the bounds; malformed persisted values leave the bound
// open with a logged warning.
func (f *DateFilter) LoadState(store config.Store) {
	f.loadBase(store)

	section := f.section()
	f.startDate = f.loadBound(store, section, keyStartDate)
	f.endDate = f.loadBound(store, section, keyEndDate)
}

func (f *DateFilter) loadBound(store config.Store, section, key string) *time.Time {
	value := store.GetValue(section, key, "")
	if value == "" {
		return nil
	}
	t, err := time.Parse(f.layout, value)
	if err != nil {
		f.logger.Warnw("malformed persisted date, ignoring",
			"key", key, "value", value, "error", err)
		return nil
	}
	return &t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
