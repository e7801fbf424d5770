// Package correct applies priority-ordered correction rules across the three
// fields of chest entries, cascading rule outputs within a pass and keeping
// per-pass statistics.
package correct

import (
	"sort"

	"go.uber.org/zap"

	"chesttrack/core"
	"chesttrack/metrics"
)

// Stats holds the cumulative counters of the most recent Apply call.
type Stats struct {
	// EntriesProcessed counts every entry seen, corrected or not.
	EntriesProcessed int
	// EntriesCorrected counts entries on which at least one field changed.
	EntriesCorrected int
	// CorrectionsMade counts individual rule firings that changed the running
	// value, so one field can account for several corrections in a pass.
	CorrectionsMade int
}

// Result records a single rule firing during the most recent pass.
type Result struct {
	EntryIndex int
	Field      string
	OldValue   string
	NewValue   string
	RuleType   core.RuleType
}

// Corrector applies a rule list to entries. The rule list is snapshotted and
// stable-sorted by descending priority at construction; replacing it via
// SetRules swaps in a fresh snapshot so readers never observe a half-updated
// list.
//
// A Corrector is not safe for concurrent use; callers serialize SetRules
// against Apply.
type Corrector struct {
	rules       []core.CorrectionRule
	logger      *zap.SugaredLogger
	stats       Stats
	lastResults []Result
}

// New creates a Corrector over a snapshot of rules.
func New(rules []core.CorrectionRule, logger *zap.SugaredLogger) *Corrector {
	c := &Corrector{logger: logger.Named("corrector")}
	c.SetRules(rules)
	return c
}

// SetRules replaces the rule snapshot. Rules are copied and stable-sorted by
// descending priority: equal-priority rules keep their original relative
// order.
func (c *Corrector) SetRules(rules []core.CorrectionRule) {
	sorted := make([]core.CorrectionRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	c.rules = sorted
}

// Rules returns a copy of the sorted rule snapshot.
func (c *Corrector) Rules() []core.CorrectionRule {
	out := make([]core.CorrectionRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Apply runs every applicable rule over the chest_type, player and source
// fields of each entry, in sorted rule order. Within a pass each rule's output
// feeds the next rule's input, so corrections cascade. Field changes are
// recorded on the entry itself. Stats reset at the start of each call.
func (c *Corrector) Apply(entries []*core.Entry) Stats {
	c.stats = Stats{}
	c.lastResults = c.lastResults[:0]

	for idx, entry := range entries {
		c.stats.EntriesProcessed++
		metrics.EntriesProcessed.Inc()

		entryChanged := false
		for _, field := range core.EntryFields {
			start, _ := entry.Field(field)
			value := start

			for _, rule := range c.rules {
				if !rule.AppliesToField(field) {
					continue
				}
				corrected, changed := rule.ApplyToText(value)
				if !changed {
					continue
				}
				c.stats.CorrectionsMade++
				metrics.CorrectionsApplied.WithLabelValues(rule.Type.String()).Inc()
				c.lastResults = append(c.lastResults, Result{
					EntryIndex: idx,
					Field:      field,
					OldValue:   value,
					NewValue:   corrected,
					RuleType:   rule.Type,
				})
				value = corrected
			}

			if value != start {
				entry.RecordCorrection(field, start, value)
				entryChanged = true
				c.logger.Debugw("field corrected",
					"entry", idx, "field", field, "from", start, "to", value)
			}
		}

		if entryChanged {
			c.stats.EntriesCorrected++
		}
	}

	c.logger.Infow("corrections applied",
		"entries_processed", c.stats.EntriesProcessed,
		"entries_corrected", c.stats.EntriesCorrected,
		"corrections_made", c.stats.CorrectionsMade)
	return c.stats
}

// Stats returns the counters of the most recent Apply call.
func (c *Corrector) Stats() Stats {
	return c.stats
}

// LastResults returns the individual rule firings of the most recent Apply
// call, in application order.
func (c *Corrector) LastResults() []Result {
	out := make([]Result, len(c.lastResults))
	copy(out, c.lastResults)
	return out
}
