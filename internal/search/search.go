// Package search backs the TUI's global search box. Unlike the catalog
// filters, which are plain substring matches, search tolerates typos and
// out-of-order words, and reports which title characters matched so the view
// can highlight them.
package search

import (
	"sort"
	"strings"

	"github.com/cinelog/cinelog/internal/domain"
	rank "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Result is one matched entry with highlight metadata.
type Result struct {
	Entry          domain.Entry
	MatchedIndexes []int // rune positions in the title that matched
	Score          int   // higher = better
}

type entrySource []domain.Entry

func (s entrySource) String(i int) string { return s[i].Title }
func (s entrySource) Len() int            { return len(s) }

// Titles fuzzy-matches the query against entry titles, best match first.
// A blank query matches nothing.
func Titles(entries []domain.Entry, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, entrySource(entries))
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// SuggestGenres ranks the fixed genre list against a possibly misspelled
// filter value, closest first, for the "did you mean" hint under the genre
// filter.
func SuggestGenres(value string, limit int) []string {
	return suggest(value, domain.Genres, limit)
}

// SuggestLanguages ranks the languages present in a snapshot against a
// filter value, closest first.
func SuggestLanguages(entries []domain.Entry, value string, limit int) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, e := range entries {
		l := strings.TrimSpace(e.Language)
		if l != "" && !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return suggest(value, langs, limit)
}

func suggest(value string, candidates []string, limit int) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	ranks := rank.RankFindNormalizedFold(value, candidates)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
