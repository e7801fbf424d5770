// Package validate holds canonical validation lists and membership checking
// with optional fuzzy tolerance for near-miss values.
package validate

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"chesttrack/match"
	"chesttrack/metrics"
)

// ListType identifies which entry field a validation list covers.
type ListType int

const (
	// ListTypeChest covers chest_type values.
	ListTypeChest ListType = iota
	// ListTypePlayer covers player values.
	ListTypePlayer
	// ListTypeSource covers source values.
	ListTypeSource
)

func (t ListType) String() string {
	switch t {
	case ListTypePlayer:
		return "player"
	case ListTypeSource:
		return "source"
	default:
		return "chest_type"
	}
}

// ParseListType maps a string to a ListType case-insensitively. Unknown
// values normalize to ListTypeChest, mirroring the forgiving category
// defaults of the rule model.
func ParseListType(s string) ListType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return ListTypePlayer
	case "source":
		return ListTypeSource
	default:
		return ListTypeChest
	}
}

// Result is the outcome of a membership check.
type Result struct {
	// Valid reports whether the value was accepted, exactly or fuzzily.
	Valid bool
	// Confidence is 1.0 for exact hits, the similarity score for fuzzy hits,
	// and 0.0 otherwise.
	Confidence float64
	// Match names the canonical entry a fuzzy hit resolved to. Empty for
	// exact hits and misses.
	Match string
}

// List is a canonical set of accepted strings for one field type. Entries are
// trimmed on insert and deduplicated by set semantics.
//
// A List is not safe for concurrent use; callers serialize entry mutation
// against Validate.
type List struct {
	Type ListType
	Name string

	// UseFuzzy enables the fuzzy fallback in Validate when no exact match is
	// found.
	UseFuzzy bool
	// CaseSensitive makes exact matching compare entries verbatim instead of
	// case-folded.
	CaseSensitive bool

	matcher match.Matcher
	entries map[string]struct{}
	logger  *zap.SugaredLogger
}

// NewList creates a validation list seeded from initial (which may be nil).
func NewList(listType ListType, name string, initial []string, logger *zap.SugaredLogger) *List {
	l := &List{
		Type:    listType,
		Name:    name,
		matcher: match.Default(),
		entries: make(map[string]struct{}),
		logger:  logger.Named("validation." + name),
	}
	l.AddEntries(initial)
	return l
}

// AddEntry inserts a single entry, trimmed. Blank and duplicate values are
// silently absorbed.
func (l *List) AddEntry(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	l.entries[trimmed] = struct{}{}
}

// AddEntries inserts each value via AddEntry.
func (l *List) AddEntries(values []string) {
	for _, v := range values {
		l.AddEntry(v)
	}
}

// RemoveEntry deletes the trimmed value if present and reports whether it was.
func (l *List) RemoveEntry(value string) bool {
	trimmed := strings.TrimSpace(value)
	if _, ok := l.entries[trimmed]; !ok {
		return false
	}
	delete(l.entries, trimmed)
	return true
}

// HasEntry reports exact membership of the trimmed value.
func (l *List) HasEntry(value string) bool {
	_, ok := l.entries[strings.TrimSpace(value)]
	return ok
}

// Clear removes all entries.
func (l *List) Clear() {
	l.entries = make(map[string]struct{})
}

// Count returns the number of entries.
func (l *List) Count() int {
	return len(l.entries)
}

// Entries returns a sorted copy of the entry set. Callers never share the
// internal collection.
func (l *List) Entries() []string {
	out := make([]string, 0, len(l.entries))
	for e := range l.entries {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Threshold returns the current fuzzy matching threshold.
func (l *List) Threshold() float64 {
	return l.matcher.Threshold
}

// UpdateFuzzyThreshold replaces the internal matcher with one using the new
// threshold.
func (l *List) UpdateFuzzyThreshold(threshold float64) {
	l.matcher = match.New(threshold)
}

// Validate checks a value against the list:
//
//  1. Blank input is invalid.
//  2. An exact hit (case-folded unless CaseSensitive) is valid with
//     confidence 1.0 and no reported match.
//  3. With UseFuzzy on and a non-empty list, the best fuzzy candidate at or
//     above the threshold is valid with its score and the canonical entry.
//  4. Everything else is invalid.
func (l *List) Validate(value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		metrics.ValidationChecks.WithLabelValues(metrics.ResultInvalid).Inc()
		return Result{}
	}

	for entry := range l.entries {
		if l.CaseSensitive {
			if entry == trimmed {
				metrics.ValidationChecks.WithLabelValues(metrics.ResultValid).Inc()
				return Result{Valid: true, Confidence: 1.0}
			}
		} else if strings.EqualFold(entry, trimmed) {
			metrics.ValidationChecks.WithLabelValues(metrics.ResultValid).Inc()
			return Result{Valid: true, Confidence: 1.0}
		}
	}

	if l.UseFuzzy && len(l.entries) > 0 {
		// Entries() is sorted, so equal scores resolve deterministically
		best, score, err := l.matcher.BestMatch(trimmed, l.Entries())
		if err == nil && score >= l.matcher.Threshold {
			l.logger.Debugw("fuzzy validation hit",
				"value", trimmed, "match", best, "score", score)
			metrics.ValidationChecks.WithLabelValues(metrics.ResultFuzzy).Inc()
			return Result{Valid: true, Confidence: score, Match: best}
		}
	}

	metrics.ValidationChecks.WithLabelValues(metrics.ResultInvalid).Inc()
	return Result{}
}
