package core

// Correction is one recorded field rewrite on an Entry.
type Correction struct {
	Field    string
	OldValue string
	NewValue string
}

// Entry is a single game-chest record. The three string fields are addressed
// by name (chest_type, player, source); corrections applied to an entry are
// recorded alongside the original pre-correction values.
type Entry struct {
	ChestType string
	Player    string
	Source    string

	original    map[string]string
	corrections []Correction
}

// NewEntry creates an entry with the given field values.
func NewEntry(chestType, player, source string) *Entry {
	return &Entry{
		ChestType: chestType,
		Player:    player,
		Source:    source,
	}
}

// Field returns the named field's current value. The second return is false
// for unknown field names.
func (e *Entry) Field(name string) (string, bool) {
	switch name {
	case FieldChestType:
		return e.ChestType, true
	case FieldPlayer:
		return e.Player, true
	case FieldSource:
		return e.Source, true
	default:
		return "", false
	}
}

// SetField sets the named field. Unknown field names are ignored.
func (e *Entry) SetField(name, value string) {
	switch name {
	case FieldChestType:
		e.ChestType = value
	case FieldPlayer:
		e.Player = value
	case FieldSource:
		e.Source = value
	}
}

// RecordCorrection mutates the named field to newValue and records the
// (field, old, new) triple. The original value of a field is kept from its
// first correction only, so repeated passes preserve the true pre-correction
// value.
func (e *Entry) RecordCorrection(field, oldValue, newValue string) {
	if _, known := e.Field(field); !known {
		return
	}
	if e.original == nil {
		e.original = make(map[string]string)
	}
	if _, seen := e.original[field]; !seen {
		e.original[field] = oldValue
	}
	e.corrections = append(e.corrections, Correction{
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	})
	e.SetField(field, newValue)
}

// Corrections returns a copy of the recorded corrections in application order.
func (e *Entry) Corrections() []Correction {
	out := make([]Correction, len(e.corrections))
	copy(out, e.corrections)
	return out
}

// OriginalValue returns the value the named field held before its first
// correction. The second return is false if the field was never corrected.
func (e *Entry) OriginalValue(field string) (string, bool) {
	v, ok := e.original[field]
	return v, ok
}

// Corrected reports whether any correction has been recorded on the entry.
func (e *Entry) Corrected() bool {
	return len(e.corrections) > 0
}
