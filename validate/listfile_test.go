package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListsFile_RoundTrip(t *testing.T) {
	logger := zap.NewNop().Sugar()
	players := NewList(ListTypePlayer, "players", []string{"Engelchen", "Sir Met"}, logger)
	players.UseFuzzy = true
	players.UpdateFuzzyThreshold(0.8)
	chests := NewList(ListTypeChest, "chests", []string{"Cobra Chest"}, logger)

	path := filepath.Join(t.TempDir(), "lists.yaml")
	require.NoError(t, SaveListsFile(path, map[string]*List{
		"players": players,
		"chests":  chests,
	}))

	loaded, err := LoadListsFile(path, logger)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	p := loaded["players"]
	require.NotNil(t, p)
	assert.Equal(t, ListTypePlayer, p.Type)
	assert.True(t, p.UseFuzzy)
	assert.Equal(t, 0.8, p.Threshold())
	assert.Equal(t, []string{"Engelchen", "Sir Met"}, p.Entries())

	c := loaded["chests"]
	require.NotNil(t, c)
	assert.Equal(t, ListTypeChest, c.Type)
	assert.False(t, c.UseFuzzy)
	assert.Equal(t, []string{"Cobra Chest"}, c.Entries())
}

func TestLoadListsFile_MissingFile(t *testing.T) {
	_, err := LoadListsFile(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestLoadListsFile_PathTraversalRejected(t *testing.T) {
	_, err := LoadListsFile("../../etc/passwd", zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestLoadListsFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("players: [unclosed"), 0644))

	_, err := LoadListsFile(path, zap.NewNop().Sugar())
	assert.Error(t, err)
}
