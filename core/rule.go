package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"chesttrack/match"
)

// RuleType selects the matching strategy of a CorrectionRule.
type RuleType int

const (
	// Exact matches the whole string case-sensitively and replaces it.
	Exact RuleType = iota
	// ExactIgnoreCase matches the whole string case-insensitively; on match
	// the text is replaced with ToText verbatim (original casing discarded).
	ExactIgnoreCase
	// Contains replaces every occurrence of FromText within the text.
	Contains
	// ContainsIgnoreCase replaces only the first case-insensitive occurrence.
	// The asymmetry with Contains is inherited behavior and kept as a
	// contract; see the rule tests.
	ContainsIgnoreCase
	// Fuzzy replaces the whole text on a trimmed exact match, otherwise
	// replaces individual whitespace tokens that score at or above the fuzzy
	// threshold against FromText.
	Fuzzy
)

var ruleTypeNames = map[RuleType]string{
	Exact:              "exact",
	ExactIgnoreCase:    "exact_ignore_case",
	Contains:           "contains",
	ContainsIgnoreCase: "contains_ignore_case",
	Fuzzy:              "fuzzy",
}

func (t RuleType) String() string {
	if name, ok := ruleTypeNames[t]; ok {
		return name
	}
	return "exact"
}

// ParseRuleType maps a string to a RuleType, case-insensitively and tolerant
// of both "ExactIgnoreCase" and "exact_ignore_case" spellings. Unknown values
// default to Exact.
func ParseRuleType(s string) RuleType {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "exact":
		return Exact
	case "exactignorecase":
		return ExactIgnoreCase
	case "contains":
		return Contains
	case "containsignorecase":
		return ContainsIgnoreCase
	case "fuzzy":
		return Fuzzy
	default:
		return Exact
	}
}

// Category is the field group a CorrectionRule targets.
type Category int

const (
	// CategoryGeneral applies the rule to every field.
	CategoryGeneral Category = iota
	// CategoryChest targets the chest_type field.
	CategoryChest
	// CategoryPlayer targets the player field.
	CategoryPlayer
	// CategorySource targets the source field.
	CategorySource
)

// Entry field names in their fixed correction order.
const (
	FieldChestType = "chest_type"
	FieldPlayer    = "player"
	FieldSource    = "source"
)

// EntryFields lists the correctable fields in the order the Corrector walks
// them.
var EntryFields = []string{FieldChestType, FieldPlayer, FieldSource}

func (c Category) String() string {
	switch c {
	case CategoryChest:
		return "chest"
	case CategoryPlayer:
		return "player"
	case CategorySource:
		return "source"
	default:
		return "general"
	}
}

// Field returns the entry field this category targets, or "" for
// CategoryGeneral (which targets all fields).
func (c Category) Field() string {
	switch c {
	case CategoryChest:
		return FieldChestType
	case CategoryPlayer:
		return FieldPlayer
	case CategorySource:
		return FieldSource
	default:
		return ""
	}
}

// ParseCategory maps a string to a Category case-insensitively. Anything
// outside {chest, player, source, general} silently normalizes to
// CategoryGeneral; imports and tests rely on this forgiving default.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chest":
		return CategoryChest
	case "player":
		return CategoryPlayer
	case "source":
		return CategorySource
	default:
		return CategoryGeneral
	}
}

// fuzzyRuleMatcher scores tokens for the Fuzzy rule strategy. The threshold is
// fixed by contract, independent of any validation-list matcher settings.
var fuzzyRuleMatcher = match.Default()

// CorrectionRule is a single from-to text transformation. Rules are immutable
// values; edits produce a new instance.
type CorrectionRule struct {
	FromText string
	ToText   string
	Type     RuleType
	Priority int
	Category Category
}

// NewRule constructs a CorrectionRule. A category outside the known enum
// normalizes to CategoryGeneral.
func NewRule(from, to string, ruleType RuleType, priority int, category Category) CorrectionRule {
	if category < CategoryGeneral || category > CategorySource {
		category = CategoryGeneral
	}
	return CorrectionRule{
		FromText: from,
		ToText:   to,
		Type:     ruleType,
		Priority: priority,
		Category: category,
	}
}

// AppliesToField reports whether this rule targets the named entry field.
// General rules target every field.
func (r CorrectionRule) AppliesToField(field string) bool {
	target := r.Category.Field()
	return target == "" || target == field
}

// ApplyToText applies the rule to a text value and reports whether the text
// changed, dispatching on the rule's matching strategy.
func (r CorrectionRule) ApplyToText(text string) (string, bool) {
	switch r.Type {
	case Exact:
		if r.FromText == text {
			return r.ToText, true
		}
		return text, false

	case ExactIgnoreCase:
		if strings.EqualFold(r.FromText, text) {
			return r.ToText, true
		}
		return text, false

	case Contains:
		if strings.Contains(text, r.FromText) {
			corrected := strings.ReplaceAll(text, r.FromText, r.ToText)
			return corrected, corrected != text
		}
		return text, false

	case ContainsIgnoreCase:
		start, end, found := foldedIndex(text, strings.ToLower(r.FromText))
		if !found {
			return text, false
		}
		// Only the first occurrence is spliced; this intentionally differs
		// from the all-occurrence semantics of Contains.
		corrected := text[:start] + r.ToText + text[end:]
		return corrected, corrected != text

	case Fuzzy:
		return r.applyFuzzy(text)

	default:
		return text, false
	}
}

// foldedIndex locates the first occurrence of lowerNeedle in the lowercase
// form of text and returns the matched span as byte offsets into text itself.
// Lowercasing can change a rune's UTF-8 length (U+023A Ⱥ is two bytes, its
// lowercase U+2C65 ⱥ is three), so offsets found in the lowered copy cannot
// be applied to the original directly; an offset table built while lowering
// maps them back.
func foldedIndex(text, lowerNeedle string) (start, end int, found bool) {
	var lowered strings.Builder
	lowered.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		lowered.WriteRune(lr)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))

	idx := strings.Index(lowered.String(), lowerNeedle)
	if idx < 0 {
		return 0, 0, false
	}
	return offsets[idx], offsets[idx+len(lowerNeedle)], true
}

func (r CorrectionRule) applyFuzzy(text string) (string, bool) {
	if strings.TrimSpace(text) == strings.TrimSpace(r.FromText) {
		return r.ToText, true
	}

	tokens := strings.Fields(text)
	changed := false
	for i, token := range tokens {
		if fuzzyRuleMatcher.IsMatch(token, r.FromText) {
			tokens[i] = r.ToText
			changed = true
		}
	}
	if !changed {
		return text, false
	}
	// Tokens rejoin with single spaces; original inter-token spacing is lost.
	return strings.Join(tokens, " "), true
}

// Import/export column names for external rule rows.
const (
	colFrom     = "From"
	colTo       = "To"
	colCategory = "Category"
)

// RuleFromRow constructs a rule from an external ingestion row. Column headers
// match case-insensitively. A missing or empty "From"/"To" is a hard error
// reported as a RowError carrying rowNum; an unrecognized category value
// silently defaults to general.
func RuleFromRow(row Row, rowNum int) (CorrectionRule, error) {
	from, ok := rowValue(row, colFrom)
	if !ok {
		return CorrectionRule{}, &RowError{Row: rowNum, Column: colFrom, Kind: ErrMissingField}
	}
	if strings.TrimSpace(from) == "" {
		return CorrectionRule{}, &RowError{Row: rowNum, Column: colFrom, Kind: ErrEmptyValue}
	}

	to, ok := rowValue(row, colTo)
	if !ok {
		return CorrectionRule{}, &RowError{Row: rowNum, Column: colTo, Kind: ErrMissingField}
	}
	if strings.TrimSpace(to) == "" {
		return CorrectionRule{}, &RowError{Row: rowNum, Column: colTo, Kind: ErrEmptyValue}
	}

	category := CategoryGeneral
	if raw, ok := rowValue(row, colCategory); ok {
		category = ParseCategory(raw)
	}

	return NewRule(from, to, Exact, 0, category), nil
}

// ExportRow renders the rule as an external export row.
func (r CorrectionRule) ExportRow() Row {
	return Row{
		colFrom:     r.FromText,
		colTo:       r.ToText,
		colCategory: r.Category.String(),
	}
}

// rowValue looks up a column by case-insensitive header match.
func rowValue(row Row, column string) (string, bool) {
	if v, ok := row[column]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return "", false
}
