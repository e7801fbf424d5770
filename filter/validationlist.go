package filter

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"chesttrack/config"
	"chesttrack/core"
)

// SelectionType decides whether selected values are kept or dropped.
type SelectionType string

const (
	// SelectionInclude keeps rows whose column value is selected.
	SelectionInclude SelectionType = "include"
	// SelectionExclude keeps rows whose column value is not selected.
	SelectionExclude SelectionType = "exclude"
)

// ParseSelectionType maps a string to a SelectionType; anything but
// "exclude" (case-insensitive) is include.
func ParseSelectionType(s string) SelectionType {
	if strings.EqualFold(strings.TrimSpace(s), string(SelectionExclude)) {
		return SelectionExclude
	}
	return SelectionInclude
}

// ValidationListFilter keeps or drops rows by membership of one column's
// values in a selected value set.
type ValidationListFilter struct {
	base

	columnName    string
	selected      map[string]struct{}
	selectionType SelectionType
	caseSensitive bool
}

// NewValidationListFilter creates a filter over the named column with an
// empty selection.
func NewValidationListFilter(id, displayName, columnName string, logger *zap.SugaredLogger) *ValidationListFilter {
	return &ValidationListFilter{
		base:          newBase(id, displayName, logger),
		columnName:    columnName,
		selected:      make(map[string]struct{}),
		selectionType: SelectionInclude,
	}
}

// ColumnName returns the column this filter operates on.
func (f *ValidationListFilter) ColumnName() string {
	return f.columnName
}

// SetSelectedValues replaces the selection.
func (f *ValidationListFilter) SetSelectedValues(values []string) {
	f.selected = make(map[string]struct{}, len(values))
	for _, v := range values {
		f.selected[v] = struct{}{}
	}
}

// AddSelectedValue adds one value to the selection.
func (f *ValidationListFilter) AddSelectedValue(value string) {
	f.selected[value] = struct{}{}
}

// RemoveSelectedValue removes one value from the selection.
func (f *ValidationListFilter) RemoveSelectedValue(value string) {
	delete(f.selected, value)
}

// SelectedValues returns the sorted selection.
func (f *ValidationListFilter) SelectedValues() []string {
	out := make([]string, 0, len(f.selected))
	for v := range f.selected {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SetSelectionType switches between include and exclude semantics.
func (f *ValidationListFilter) SetSelectionType(t SelectionType) {
	f.selectionType = ParseSelectionType(string(t))
}

// SelectionType returns the current selection semantics.
func (f *ValidationListFilter) SelectionType() SelectionType {
	return f.selectionType
}

// SetCaseSensitive toggles case-sensitive membership.
func (f *ValidationListFilter) SetCaseSensitive(v bool) {
	f.caseSensitive = v
}

// IsActive reports enabled with a non-empty selection.
func (f *ValidationListFilter) IsActive() bool {
	return f.enabled && len(f.selected) > 0
}

// Clear empties the selection.
func (f *ValidationListFilter) Clear() {
	f.selected = make(map[string]struct{})
}

// Apply keeps matching rows for include and non-matching rows for exclude.
// Rows without the target column pass through unchanged.
func (f *ValidationListFilter) Apply(rows core.Rows) core.Rows {
	if !f.IsActive() {
		return rows
	}
	if !rows.HasColumn(f.columnName) {
		f.logger.Debugw("column not present, passing rows through", "column", f.columnName)
		return rows
	}

	selected := f.selected
	if !f.caseSensitive {
		selected = make(map[string]struct{}, len(f.selected))
		for v := range f.selected {
			selected[strings.ToLower(v)] = struct{}{}
		}
	}

	result := make(core.Rows, 0, len(rows))
	for _, row := range rows {
		value := row[f.columnName]
		if !f.caseSensitive {
			value = strings.ToLower(value)
		}
		_, member := selected[value]
		if (f.selectionType == SelectionInclude) == member {
			result = append(result, row)
		}
	}
	return result
}

// Persisted state keys.
const (
	keySelectionType  = "selection_type"
	keySelectedValues = "selected_values"
)

// SaveState persists the selection criteria.
func (f *ValidationListFilter) SaveState(store config.Store) {
	f.saveBase(store)

	section := f.section()
	store.SetValue(section, keySelectionType, string(f.selectionType))
	store.SetValue(section, keyCaseSensitive, config.FormatBool(f.caseSensitive))
	store.SetValue(section, keySelectedValues, strings.Join(f.SelectedValues(), ","))
}

// LoadState restores the selection criteria.
func (f *ValidationListFilter) LoadState(store config.Store) {
	f.loadBase(store)

	section := f.section()
	f.selectionType = ParseSelectionType(store.GetValue(section, keySelectionType, string(SelectionInclude)))
	f.caseSensitive = config.ParseBool(store.GetValue(section, keyCaseSensitive, "False"))

	values := store.GetValue(section, keySelectedValues, "")
	if values == "" {
		f.selected = make(map[string]struct{})
	} else {
		f.SetSelectedValues(strings.Split(values, ","))
	}
}
