package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chesttrack/core"
)

func setupRuleStorage(t *testing.T) *RuleStorage {
	t.Helper()
	return NewRuleStorage(setupTestSQLite(t), zap.NewNop().Sugar())
}

func TestRuleStorage_SaveAndGet(t *testing.T) {
	rs := setupRuleStorage(t)

	rule := core.NewRule("Krimelmonster", "Krümelmonster", core.Fuzzy, 5, core.CategoryPlayer)
	id, err := rs.SaveRule(rule)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := rs.GetRule(id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, rule, stored.Rule)
}

func TestRuleStorage_GetMissingRule(t *testing.T) {
	rs := setupRuleStorage(t)

	_, err := rs.GetRule("no-such-id")
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestRuleStorage_GetAllPreservesInsertionOrder(t *testing.T) {
	rs := setupRuleStorage(t)

	rules := []core.CorrectionRule{
		core.NewRule("VV", "W", core.Contains, 0, core.CategoryGeneral),
		core.NewRule("0", "O", core.Contains, 10, core.CategoryChest),
		core.NewRule("l", "I", core.Exact, 5, core.CategorySource),
	}
	for _, rule := range rules {
		_, err := rs.SaveRule(rule)
		require.NoError(t, err)
	}

	stored, err := rs.GetAllRules()
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, rule := range rules {
		assert.Equal(t, rule, stored[i].Rule)
	}

	count, err := rs.RuleCount()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestRuleStorage_Update(t *testing.T) {
	rs := setupRuleStorage(t)

	id, err := rs.SaveRule(core.NewRule("VV", "W", core.Contains, 0, core.CategoryGeneral))
	require.NoError(t, err)

	updated := core.NewRule("VV", "W", core.ContainsIgnoreCase, 7, core.CategoryPlayer)
	require.NoError(t, rs.UpdateRule(id, updated))

	stored, err := rs.GetRule(id)
	require.NoError(t, err)
	assert.Equal(t, updated, stored.Rule)

	assert.ErrorIs(t, rs.UpdateRule("no-such-id", updated), ErrRuleNotFound)
}

func TestRuleStorage_Delete(t *testing.T) {
	rs := setupRuleStorage(t)

	id, err := rs.SaveRule(core.NewRule("VV", "W", core.Contains, 0, core.CategoryGeneral))
	require.NoError(t, err)

	require.NoError(t, rs.DeleteRule(id))
	_, err = rs.GetRule(id)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	assert.ErrorIs(t, rs.DeleteRule(id), ErrRuleNotFound)
}

func TestRuleStorage_ReplaceAllRules(t *testing.T) {
	rs := setupRuleStorage(t)

	_, err := rs.SaveRule(core.NewRule("old", "stale", core.Exact, 0, core.CategoryGeneral))
	require.NoError(t, err)

	replacement := []core.CorrectionRule{
		core.NewRule("VV", "W", core.Contains, 0, core.CategoryGeneral),
		core.NewRule("Krimel", "Krümel", core.Exact, 3, core.CategoryPlayer),
	}
	require.NoError(t, rs.ReplaceAllRules(replacement))

	stored, err := rs.GetAllRules()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "VV", stored[0].Rule.FromText)
	assert.Equal(t, "Krimel", stored[1].Rule.FromText)
}

func TestRuleStorage_ReplaceAllWithEmptySetClears(t *testing.T) {
	rs := setupRuleStorage(t)

	_, err := rs.SaveRule(core.NewRule("old", "stale", core.Exact, 0, core.CategoryGeneral))
	require.NoError(t, err)

	require.NoError(t, rs.ReplaceAllRules(nil))

	count, err := rs.RuleCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRuleStorage_TypeAndCategoryRoundTrip(t *testing.T) {
	rs := setupRuleStorage(t)

	for _, rule := range []core.CorrectionRule{
		core.NewRule("a", "b", core.Exact, 0, core.CategoryGeneral),
		core.NewRule("a", "b", core.ExactIgnoreCase, 0, core.CategoryChest),
		core.NewRule("a", "b", core.Contains, 0, core.CategoryPlayer),
		core.NewRule("a", "b", core.ContainsIgnoreCase, 0, core.CategorySource),
		core.NewRule("a", "b", core.Fuzzy, 0, core.CategoryGeneral),
	} {
		id, err := rs.SaveRule(rule)
		require.NoError(t, err)

		stored, err := rs.GetRule(id)
		require.NoError(t, err)
		assert.Equal(t, rule.Type, stored.Rule.Type)
		assert.Equal(t, rule.Category, stored.Rule.Category)
	}
}
