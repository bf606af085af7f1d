package nameparse

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Matcher scores a query against candidate strings and returns the best one.
// Scores are on a 0-100 scale where 100 is an exact match.
type Matcher interface {
	// BestMatch returns the highest-scoring candidate for the query. With no
	// candidates it returns ("", 0).
	BestMatch(query string, candidates []string) (value string, score int)
}

// levenshteinMatcher scores candidates by Levenshtein similarity,
// case-insensitively.
type levenshteinMatcher struct {
	params *levenshtein.Params
}

// NewMatcher creates the default fuzzy matcher.
func NewMatcher() Matcher {
	return &levenshteinMatcher{params: levenshtein.NewParams()}
}

// BestMatch implements Matcher. Ties keep the earliest candidate so results
// are deterministic for a fixed candidate order.
func (m *levenshteinMatcher) BestMatch(query string, candidates []string) (string, int) {
	q := strings.ToLower(query)

	best := ""
	bestScore := -1
	for _, c := range candidates {
		sim := levenshtein.Match(q, strings.ToLower(c), m.params)
		score := int(sim*100 + 0.5)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}
