package session

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"tabstrip/internal/model"
	"tabstrip/internal/tabs"
)

// Lookup resolves a user-typed tab reference against the current state.
//
// Resolution order: exact id, "#N" (1-based position), case-insensitive label,
// label prefix, then the closest label by edit distance. Ties go to the
// leftmost tab.
func (s *Store) Lookup(query string) (model.Tab, error) {
	return Resolve(s.State().Tabs, query)
}

func Resolve(ts []model.Tab, query string) (model.Tab, error) {
	q := strings.TrimSpace(query)
	if q == "" || len(ts) == 0 {
		return model.Tab{}, &tabs.NotFoundError{Kind: "tab", ID: query}
	}
	if t, ok := tabs.Find(ts, q); ok {
		return t, nil
	}
	if strings.HasPrefix(q, "#") {
		n, err := strconv.Atoi(strings.TrimPrefix(q, "#"))
		if err != nil || n < 1 || n > len(ts) {
			return model.Tab{}, &tabs.NotFoundError{Kind: "tab", ID: query}
		}
		return ts[n-1], nil
	}

	lq := strings.ToLower(q)
	for _, t := range ts {
		if strings.ToLower(t.Label) == lq {
			return t, nil
		}
	}
	for _, t := range ts {
		if strings.HasPrefix(strings.ToLower(t.Label), lq) {
			return t, nil
		}
	}

	best := -1
	bestDist := 0
	for i, t := range ts {
		d := levenshtein.ComputeDistance(lq, strings.ToLower(t.Label))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	// Anything needing as many edits as the query has characters is not a match.
	if best < 0 || bestDist >= utf8.RuneCountInString(lq) {
		return model.Tab{}, &tabs.NotFoundError{Kind: "tab", ID: query}
	}
	return ts[best], nil
}
