package match

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum similarity score used when no explicit
// threshold is configured.
const DefaultThreshold = 0.85

// ErrNoChoices is returned by BestMatch when called with an empty candidate
// list. This is a contract violation on the caller's side, not a user-facing
// condition.
var ErrNoChoices = errors.New("choices list cannot be empty")

// Matcher scores the similarity of two strings and decides matches against a
// configurable threshold. The zero value is usable but has a threshold of 0;
// use Default() or New() to get the standard 0.85 cutoff.
//
// A Matcher is stateless beyond its threshold and never mutates its inputs.
type Matcher struct {
	Threshold float64
}

// New creates a Matcher with the given threshold, clamped to [0, 1].
func New(threshold float64) Matcher {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	return Matcher{Threshold: threshold}
}

// Default returns a Matcher with the standard threshold.
func Default() Matcher {
	return Matcher{Threshold: DefaultThreshold}
}

// Match is a scored candidate returned by Matches.
type Match struct {
	Choice string
	Score  float64
}

// Similarity returns a score in [0, 1] for two strings. Each string is split
// on whitespace, its tokens sorted and rejoined, so word order does not affect
// the score; case and punctuation do. The normalized strings are then compared
// with a rune-level Levenshtein ratio.
func (m Matcher) Similarity(a, b string) float64 {
	na := tokenSort(a)
	nb := tokenSort(b)
	if na == nb {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(na, nb)
	longest := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(dist)/float64(longest)
}

// IsMatch reports whether the similarity of a and b reaches the threshold.
func (m Matcher) IsMatch(a, b string) bool {
	return m.Similarity(a, b) >= m.Threshold
}

// BestMatch scans all choices and returns the highest-scoring one together
// with its score. Ties keep the first candidate encountered. Returns
// ErrNoChoices when choices is empty.
func (m Matcher) BestMatch(query string, choices []string) (string, float64, error) {
	if len(choices) == 0 {
		return "", 0, ErrNoChoices
	}

	best := ""
	bestScore := 0.0
	for _, choice := range choices {
		if score := m.Similarity(query, choice); score > bestScore {
			bestScore = score
			best = choice
		}
	}
	return best, bestScore, nil
}

// Matches returns every choice scoring at or above the threshold, sorted by
// descending score. Equal scores preserve the original choices order.
func (m Matcher) Matches(query string, choices []string) []Match {
	var matches []Match
	for _, choice := range choices {
		if score := m.Similarity(query, choice); score >= m.Threshold {
			matches = append(matches, Match{Choice: choice, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// tokenSort normalizes a string for order-independent comparison: whitespace
// tokens are sorted and rejoined with single spaces.
func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
