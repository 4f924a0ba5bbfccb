package logic

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"passgrip/internal/domain"
)

// Search returns the entries of snapshot matching query, best match first.
// An empty or blank query returns the whole snapshot in name order.
func Search(snapshot domain.Snapshot, query string) []domain.Entry {
	entries := snapshot.Clone()
	sortByName(entries)

	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	matches := fuzzy.FindNoSort(query, entries.Names())
	ranked := make([]rankedMatch, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, rankedMatch{
			entry: entries[m.Index],
			// fuzzy charges one point per unmatched character; put it back so
			// names of different length that match equally well tie
			score: m.Score + len(m.Str) - len(m.MatchedIndexes),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.Name < ranked[j].entry.Name
	})

	results := make([]domain.Entry, len(ranked))
	for i, r := range ranked {
		results[i] = r.entry
	}
	return results
}

type rankedMatch struct {
	entry domain.Entry
	score int
}

func sortByName(entries []domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
