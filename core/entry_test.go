package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_FieldLookup(t *testing.T) {
	e := NewEntry("Cobra Chest", "Engelchen", "Level 25 Crypt")

	v, ok := e.Field(FieldChestType)
	assert.True(t, ok)
	assert.Equal(t, "Cobra Chest", v)

	v, ok = e.Field(FieldPlayer)
	assert.True(t, ok)
	assert.Equal(t, "Engelchen", v)

	_, ok = e.Field("unknown")
	assert.False(t, ok)
}

func TestEntry_RecordCorrection(t *testing.T) {
	e := NewEntry("Cobra Chest", "Engelchn", "Level 25 Crypt")

	e.RecordCorrection(FieldPlayer, "Engelchn", "Engelchen")
	assert.Equal(t, "Engelchen", e.Player)
	assert.True(t, e.Corrected())

	corrections := e.Corrections()
	assert.Len(t, corrections, 1)
	assert.Equal(t, Correction{Field: FieldPlayer, OldValue: "Engelchn", NewValue: "Engelchen"}, corrections[0])
}

func TestEntry_OriginalValueKeptFromFirstCorrection(t *testing.T) {
	e := NewEntry("Cobra Chest", "A", "Level 25 Crypt")

	e.RecordCorrection(FieldPlayer, "A", "B")
	e.RecordCorrection(FieldPlayer, "B", "C")

	orig, ok := e.OriginalValue(FieldPlayer)
	assert.True(t, ok)
	assert.Equal(t, "A", orig)
	assert.Equal(t, "C", e.Player)
	assert.Len(t, e.Corrections(), 2)

	_, ok = e.OriginalValue(FieldSource)
	assert.False(t, ok)
}

func TestEntry_RecordCorrection_UnknownFieldIgnored(t *testing.T) {
	e := NewEntry("Cobra Chest", "Engelchen", "Level 25 Crypt")
	e.RecordCorrection("bogus", "x", "y")
	assert.False(t, e.Corrected())
}

func TestRows_Columns(t *testing.T) {
	rows := Rows{
		{"player": "Engelchen", "source": "Crypt"},
		{"player": "Sir Met", "chest_type": "Cobra Chest"},
	}
	assert.Equal(t, []string{"chest_type", "player", "source"}, rows.Columns())
	assert.True(t, rows.HasColumn("chest_type"))
	assert.False(t, rows.HasColumn("date"))
}

func TestRows_CloneIsIndependent(t *testing.T) {
	rows := Rows{{"player": "Engelchen"}, {"player": "Sir Met"}}
	clone := rows.Clone()
	clone = clone[:1]

	assert.Len(t, rows, 2)
	assert.Len(t, clone, 1)
	assert.Nil(t, Rows(nil).Clone())
}
