package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupListStorage(t *testing.T) *ListStorage {
	t.Helper()
	return NewListStorage(setupTestSQLite(t), zap.NewNop().Sugar())
}

func TestListStorage_AddAndGet(t *testing.T) {
	ls := setupListStorage(t)

	added, err := ls.AddEntries("players", []string{"Engelchen", "Krümelmonster"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	entries, err := ls.GetEntries("players")
	require.NoError(t, err)
	assert.Equal(t, []string{"Engelchen", "Krümelmonster"}, entries)
}

func TestListStorage_AddTrimsAndSkipsBlanks(t *testing.T) {
	ls := setupListStorage(t)

	added, err := ls.AddEntries("players", []string{"  Engelchen  ", "", "   "})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	entries, err := ls.GetEntries("players")
	require.NoError(t, err)
	assert.Equal(t, []string{"Engelchen"}, entries)
}

func TestListStorage_AddIgnoresDuplicates(t *testing.T) {
	ls := setupListStorage(t)

	added, err := ls.AddEntries("players", []string{"Engelchen", "Engelchen"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = ls.AddEntries("players", []string{"Engelchen", "Krümelmonster"})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "Only the new entry should count")

	count, err := ls.EntryCount("players")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestListStorage_GetMissingList(t *testing.T) {
	ls := setupListStorage(t)

	_, err := ls.GetEntries("no-such-list")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestListStorage_ListsAreIndependent(t *testing.T) {
	ls := setupListStorage(t)

	_, err := ls.AddEntries("players", []string{"Engelchen"})
	require.NoError(t, err)
	_, err = ls.AddEntries("sources", []string{"Level 25 Crypt"})
	require.NoError(t, err)

	names, err := ls.ListNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"players", "sources"}, names)

	entries, err := ls.GetEntries("players")
	require.NoError(t, err)
	assert.Equal(t, []string{"Engelchen"}, entries)
}

func TestListStorage_RemoveEntry(t *testing.T) {
	ls := setupListStorage(t)

	_, err := ls.AddEntries("players", []string{"Engelchen", "Krümelmonster"})
	require.NoError(t, err)

	require.NoError(t, ls.RemoveEntry("players", "Engelchen"))

	entries, err := ls.GetEntries("players")
	require.NoError(t, err)
	assert.Equal(t, []string{"Krümelmonster"}, entries)

	assert.ErrorIs(t, ls.RemoveEntry("players", "Engelchen"), ErrEntryNotFound)
}

func TestListStorage_DeleteList(t *testing.T) {
	ls := setupListStorage(t)

	_, err := ls.AddEntries("players", []string{"Engelchen"})
	require.NoError(t, err)

	require.NoError(t, ls.DeleteList("players"))
	_, err = ls.GetEntries("players")
	assert.ErrorIs(t, err, ErrListNotFound)

	assert.ErrorIs(t, ls.DeleteList("players"), ErrListNotFound)
}

func TestListStorage_ReplaceEntries(t *testing.T) {
	ls := setupListStorage(t)

	_, err := ls.AddEntries("sources", []string{"Old Source"})
	require.NoError(t, err)

	require.NoError(t, ls.ReplaceEntries("sources", []string{"Mine", "Level 25 Crypt"}))

	entries, err := ls.GetEntries("sources")
	require.NoError(t, err)
	assert.Equal(t, []string{"Level 25 Crypt", "Mine"}, entries)
}
