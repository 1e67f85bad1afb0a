package view

import (
	"strings"

	"github.com/vishwajitvm/tracenest/internal/model"
)

// Filter returns the records passing the given filter state, in their
// original order. A record passes when its level is in the active set (or
// the set is empty) and the lowercased raw line contains the search term
// (or the term is empty). The raw line is the one search haystack, so
// matches cover both the human message and any embedded payload text.
func Filter(records []model.LogRecord, state model.FilterState) []model.LogRecord {
	out := make([]model.LogRecord, 0, len(records))

	for _, rec := range records {
		if len(state.ActiveLevels) > 0 && !state.ActiveLevels[rec.Level] {
			continue
		}
		if state.SearchTerm != "" && !strings.Contains(strings.ToLower(rec.Raw), state.SearchTerm) {
			continue
		}
		out = append(out, rec)
	}

	return out
}
