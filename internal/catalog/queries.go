package catalog

import (
	"sort"
	"strings"

	"github.com/cinelog/cinelog/internal/domain"
)

// Pure query functions over a catalog snapshot. None of them mutate their
// input; filters return the input slice unchanged when the filter value is
// blank, so chained calls compose without special cases.

// SortOrder selects ascending or descending for SortBy.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterByText keeps entries whose title or genre contains the term,
// case-insensitively. A blank term is the identity.
func FilterByText(entries []domain.Entry, term string) []domain.Entry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	var out []domain.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Genre), term) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByLanguage keeps entries whose language contains the filter,
// case-insensitively. A blank filter is the identity.
func FilterByLanguage(entries []domain.Entry, language string) []domain.Entry {
	return filterContains(entries, language, func(e domain.Entry) string { return e.Language })
}

// FilterByGenre keeps entries whose genre contains the filter,
// case-insensitively. A blank filter is the identity.
func FilterByGenre(entries []domain.Entry, genre string) []domain.Entry {
	return filterContains(entries, genre, func(e domain.Entry) string { return e.Genre })
}

func filterContains(entries []domain.Entry, value string, field func(domain.Entry) string) []domain.Entry {
	value = strings.ToLower(value)
	if value == "" {
		return entries
	}
	var out []domain.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(field(e)), value) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByContentType keeps entries of exactly the given type. An empty type
// is the identity.
func FilterByContentType(entries []domain.Entry, contentType domain.ContentType) []domain.Entry {
	if contentType == "" {
		return entries
	}
	var out []domain.Entry
	for _, e := range entries {
		t := e.ContentType
		if t == "" {
			t = domain.ContentTypeMovie
		}
		if t == contentType {
			out = append(out, e)
		}
	}
	return out
}

// FilterByLanguageExact is the per-language browse filter: exact match first,
// then a case-insensitive trimmed pass. The second tier tolerates casing and
// whitespace drift in records written by older clients.
func FilterByLanguageExact(entries []domain.Entry, language string) []domain.Entry {
	var out []domain.Entry
	for _, e := range entries {
		if e.Language == language {
			out = append(out, e)
		}
	}
	if out != nil {
		return out
	}

	want := strings.ToLower(strings.TrimSpace(language))
	for _, e := range entries {
		if strings.ToLower(strings.TrimSpace(e.Language)) == want {
			out = append(out, e)
		}
	}
	return out
}

// SortBy returns a stably sorted copy. The year field compares numerically
// with missing years as 0; every other field compares case-insensitively
// with missing values as the empty string.
func SortBy(entries []domain.Entry, field string, order SortOrder) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)

	less := func(a, b domain.Entry) bool {
		if field == "year" {
			return a.Year < b.Year
		}
		return strings.ToLower(sortValue(a, field)) < strings.ToLower(sortValue(b, field))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func sortValue(e domain.Entry, field string) string {
	switch field {
	case "title":
		return e.Title
	case "language":
		return e.Language
	case "genre":
		return e.Genre
	case "description":
		return e.Description
	default:
		return ""
	}
}

// Group is one key's worth of a grouped snapshot, in first-seen order.
type Group struct {
	Key     string
	Entries []domain.Entry
}

// GroupBy buckets entries by key, preserving both the order keys first
// appear and the order of entries within each bucket.
func GroupBy(entries []domain.Entry, keyFn func(domain.Entry) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		k := keyFn(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// CountByLanguage tallies entries per trimmed language. Entries without a
// language are excluded entirely.
func CountByLanguage(entries []domain.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		lang := strings.TrimSpace(e.Language)
		if lang == "" {
			continue
		}
		counts[lang]++
	}
	return counts
}

// LanguageCount pairs a language with how many entries use it.
type LanguageCount struct {
	Language string
	Count    int
}

// LanguagesByCount returns languages ordered by descending entry count, ties
// broken alphabetically — the order of the language browse view.
func LanguagesByCount(entries []domain.Entry) []LanguageCount {
	counts := CountByLanguage(entries)
	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}
