package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Similarity_Identity(t *testing.T) {
	inputs := []string{"", "Krümelmonster", "Sir Met", "a b c", "  padded  "}
	for _, threshold := range []float64{0, 0.5, 0.85, 1} {
		m := New(threshold)
		for _, s := range inputs {
			assert.Equal(t, 1.0, m.Similarity(s, s), "self-similarity must be 1.0 for %q", s)
		}
	}
}

func TestMatcher_Similarity_WordOrderIndependent(t *testing.T) {
	m := Default()
	assert.Equal(t, 1.0, m.Similarity("Sir Met", "Met Sir"))
	assert.Equal(t, 1.0, m.Similarity("a  b   c", "c b a"))
}

func TestMatcher_Similarity_CloseMisspelling(t *testing.T) {
	m := Default()

	// One rune substituted out of thirteen
	score := m.Similarity("Krimelmonster", "Krümelmonster")
	assert.InDelta(t, 1.0-1.0/13.0, score, 1e-9)
	assert.True(t, m.IsMatch("Krimelmonster", "Krümelmonster"))

	assert.Less(t, m.Similarity("Engelchen", "Totally Unrelated"), 0.5)
}

func TestMatcher_Similarity_CaseSensitive(t *testing.T) {
	m := Default()
	assert.Less(t, m.Similarity("ENGELCHEN", "engelchen"), 1.0)
}

func TestMatcher_BestMatch(t *testing.T) {
	m := Default()
	choices := []string{"Engelchen", "Sir Met", "Moony"}

	best, score, err := m.BestMatch("Engelchn", choices)
	require.NoError(t, err)
	assert.Equal(t, "Engelchen", best)

	// Score must be the maximum over all choices
	for _, c := range choices {
		assert.GreaterOrEqual(t, score, m.Similarity("Engelchn", c))
	}
}

func TestMatcher_BestMatch_EmptyChoices(t *testing.T) {
	m := Default()
	_, _, err := m.BestMatch("anything", nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestMatcher_BestMatch_TieKeepsFirst(t *testing.T) {
	m := Default()
	// Both choices normalize to the same similarity against the query
	best, _, err := m.BestMatch("Sir Met", []string{"Met Sir", "Sir Met"})
	require.NoError(t, err)
	assert.Equal(t, "Met Sir", best)
}

func TestMatcher_Matches_SortedDescendingStable(t *testing.T) {
	m := New(0.5)
	choices := []string{"Engelchan", "Engelchen", "Engelchin"}

	matches := m.Matches("Engelchen", choices)
	require.NotEmpty(t, matches)

	assert.Equal(t, "Engelchen", matches[0].Choice)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}

	// Equal scores keep the original choices order
	assert.Equal(t, "Engelchan", matches[1].Choice)
	assert.Equal(t, "Engelchin", matches[2].Choice)
}

func TestMatcher_Matches_BelowThresholdExcluded(t *testing.T) {
	m := Default()
	assert.Empty(t, m.Matches("Engelchen", []string{"Moony", "xyz"}))
}

func TestNew_ClampsThreshold(t *testing.T) {
	assert.Equal(t, 0.0, New(-1).Threshold)
	assert.Equal(t, 1.0, New(2).Threshold)
}
