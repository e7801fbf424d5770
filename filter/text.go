package filter

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"chesttrack/config"
	"chesttrack/core"
)

// regexMatchTimeout bounds regex evaluation per cell so a pathological
// pattern cannot stall the pipeline.
const regexMatchTimeout = 500 * time.Millisecond

// TextFilter keeps rows where any targeted column matches a search text.
// Matching mode precedence: regex, then whole-word, then plain substring.
type TextFilter struct {
	base

	searchText    string
	targetColumns []string
	caseSensitive bool
	wholeWord     bool
	regexEnabled  bool
}

// NewTextFilter creates a text filter with empty search text. A nil or empty
// targetColumns means all columns are searched.
func NewTextFilter(id, displayName string, targetColumns []string, logger *zap.SugaredLogger) *TextFilter {
	return &TextFilter{
		base:          newBase(id, displayName, logger),
		targetColumns: append([]string(nil), targetColumns...),
	}
}

// SetSearchText sets the text to search for. Empty text deactivates the
// filter.
func (f *TextFilter) SetSearchText(text string) {
	f.searchText = text
}

// SearchText returns the current search text.
func (f *TextFilter) SearchText() string {
	return f.searchText
}

// SetTargetColumns restricts the search to the given columns; empty means all.
func (f *TextFilter) SetTargetColumns(columns []string) {
	f.targetColumns = append([]string(nil), columns...)
}

// TargetColumns returns a copy of the configured column restriction.
func (f *TextFilter) TargetColumns() []string {
	return append([]string(nil), f.targetColumns...)
}

// SetCaseSensitive toggles case-sensitive matching.
func (f *TextFilter) SetCaseSensitive(v bool) { f.caseSensitive = v }

// SetWholeWord toggles whole-word matching (ignored when regex is enabled).
func (f *TextFilter) SetWholeWord(v bool) { f.wholeWord = v }

// SetRegexEnabled toggles regex interpretation of the search text.
func (f *TextFilter) SetRegexEnabled(v bool) { f.regexEnabled = v }

// IsActive reports enabled with non-empty search text.
func (f *TextFilter) IsActive() bool {
	return f.enabled && f.searchText != ""
}

// Clear resets the search text; column restriction and mode flags stay.
func (f *TextFilter) Clear() {
	f.searchText = ""
}

// Apply keeps rows where at least one searched column matches. The selection
// is the union of per-column matches across the chosen columns.
func (f *TextFilter) Apply(rows core.Rows) core.Rows {
	if !f.IsActive() {
		return rows
	}

	columns := f.columnsToSearch(rows)
	if len(columns) == 0 {
		f.logger.Warnw("no valid columns to search in", "configured", f.targetColumns)
		return rows
	}

	matchFn, ok := f.buildMatcher()
	if !ok {
		return rows
	}

	result := make(core.Rows, 0, len(rows))
	for _, row := range rows {
		for _, col := range columns {
			value, present := row[col]
			if present && matchFn(value) {
				result = append(result, row)
				break
			}
		}
	}
	return result
}

// columnsToSearch intersects the configured columns with those actually
// present; with no restriction every column is searched.
func (f *TextFilter) columnsToSearch(rows core.Rows) []string {
	if len(f.targetColumns) == 0 {
		return rows.Columns()
	}
	var present []string
	for _, col := range f.targetColumns {
		if rows.HasColumn(col) {
			present = append(present, col)
		}
	}
	return present
}

// buildMatcher returns the per-cell predicate for the current mode. A false
// second return means the filter must fail open.
func (f *TextFilter) buildMatcher() (func(string) bool, bool) {
	if f.regexEnabled {
		opts := regexp2.None
		if !f.caseSensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(f.searchText, opts)
		if err != nil {
			f.logger.Errorw("invalid regex pattern", "pattern", f.searchText, "error", err)
			return nil, false
		}
		re.MatchTimeout = regexMatchTimeout
		return func(value string) bool {
			matched, err := re.MatchString(value)
			if err != nil {
				f.logger.Warnw("regex evaluation failed", "pattern", f.searchText, "error", err)
				return false
			}
			return matched
		}, true
	}

	if f.wholeWord {
		pattern := `\b` + regexp.QuoteMeta(f.searchText) + `\b`
		if !f.caseSensitive {
			pattern = `(?i)` + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			f.logger.Errorw("failed to build whole-word pattern", "pattern", pattern, "error", err)
			return nil, false
		}
		return re.MatchString, true
	}

	if f.caseSensitive {
		needle := f.searchText
		return func(value string) bool {
			return strings.Contains(value, needle)
		}, true
	}
	needle := strings.ToLower(f.searchText)
	return func(value string) bool {
		return strings.Contains(strings.ToLower(value), needle)
	}, true
}

// Persisted state keys.
const (
	keySearchText    = "search_text"
	keyCaseSensitive = "case_sensitive"
	keyWholeWord     = "whole_word"
	keyRegexEnabled  = "regex_enabled"
	keyTargetColumns = "target_columns"

	// allColumnsSentinel marks an unrestricted column set in the store.
	allColumnsSentinel = "all"
)

// SaveState persists the search criteria.
func (f *TextFilter) SaveState(store config.Store) {
	f.saveBase(store)

	section := f.section()
	store.SetValue(section, keySearchText, f.searchText)
	store.SetValue(section, keyCaseSensitive, config.FormatBool(f.caseSensitive))
	store.SetValue(section, keyWholeWord, config.FormatBool(f.wholeWord))
	store.SetValue(section, keyRegexEnabled, config.FormatBool(f.regexEnabled))
	if len(f.targetColumns) == 0 {
		store.SetValue(section, keyTargetColumns, allColumnsSentinel)
	} else {
		store.SetValue(section, keyTargetColumns, strings.Join(f.targetColumns, ","))
	}
}

// LoadState restores the search criteria.
func (f *TextFilter) LoadState(store config.Store) {
	f.loadBase(store)

	section := f.section()
	f.searchText = store.GetValue(section, keySearchText, "")
	f.caseSensitive = config.ParseBool(store.GetValue(section, keyCaseSensitive, "False"))
	f.wholeWord = config.ParseBool(store.GetValue(section, keyWholeWord, "False"))
	f.regexEnabled = config.ParseBool(store.GetValue(section, keyRegexEnabled, "False"))

	columns := store.GetValue(section, keyTargetColumns, allColumnsSentinel)
	if columns == allColumnsSentinel || columns == "" {
		f.targetColumns = nil
	} else {
		f.targetColumns = strings.Split(columns, ",")
	}
}
