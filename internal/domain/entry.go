package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ContentType classifies a catalog entry.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeAnime  ContentType = "anime"
)

// ContentTypes lists the valid content types in display order.
var ContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries, ContentTypeAnime}

// Genres is the fixed pick-list offered by the entry form. Stored values are
// free text, so older records may carry genres outside this set.
var Genres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Drama", "Fantasy",
	"Horror", "Mystery", "Romance", "Sci-Fi", "Thriller", "Other",
}

// String returns a human-readable label for the content type.
func (c ContentType) String() string {
	switch c {
	case ContentTypeSeries:
		return "Series"
	case ContentTypeAnime:
		return "Anime"
	default:
		return "Movie"
	}
}

// Entry is a single catalog record. All fields are optional except ID, Title,
// Language and Genre, which the validated create/edit path guarantees.
type Entry struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Language    string      `json:"language"`
	Genre       string      `json:"genre"`
	ContentType ContentType `json:"contentType,omitempty"`
	Year        int         `json:"year,omitempty"`
	Description string      `json:"description,omitempty"`

	// User rating on a 0-5 scale, defaulted to 4.0 at creation.
	Rating      float64 `json:"rating,omitempty"`
	Recommended bool    `json:"recommended,omitempty"`

	// External review scores. Nil means "not recorded" and triggers the
	// display-time fallback in the detail resolver.
	IMDBRating           *float64 `json:"imdbRating,omitempty"`
	RottenTomatoesRating *int     `json:"rottenTomatoesRating,omitempty"`
	MetacriticRating     *int     `json:"metacriticRating,omitempty"`

	// User-curated, duplicate-free, insertion ordered.
	StreamingPlatforms []string `json:"streamingPlatforms,omitempty"`

	Director   string `json:"director,omitempty"`
	Cast       string `json:"cast,omitempty"`
	Runtime    string `json:"runtime,omitempty"`
	Budget     string `json:"budget,omitempty"`
	BoxOffice  string `json:"boxOffice,omitempty"`
	Awards     string `json:"awards,omitempty"`
	TrailerURL string `json:"trailerUrl,omitempty"`

	// Opaque encoded-image payloads attached by the form flow.
	Thumbnail string `json:"thumbnail,omitempty"`
	Photo     string `json:"photo,omitempty"`

	// Extra carries fields written by newer or older client variants so the
	// store never drops what it does not recognize.
	Extra map[string]json.RawMessage `json:"-"`
}

// entryAlias avoids recursing into the custom JSON methods.
type entryAlias Entry

// knownEntryFields are the JSON keys owned by Entry itself; everything else
// round-trips through Extra.
var knownEntryFields = []string{
	"id", "title", "language", "genre", "contentType", "year", "description",
	"rating", "recommended", "imdbRating", "rottenTomatoesRating",
	"metacriticRating", "streamingPlatforms", "director", "cast", "runtime",
	"budget", "boxOffice", "awards", "trailerUrl", "thumbnail", "photo",
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Legacy records store the year as a string, sometimes empty.
	if y, ok := raw["year"]; ok {
		raw["year"] = coerceYear(y)
	}

	fixed, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var a entryAlias
	if err := json.Unmarshal(fixed, &a); err != nil {
		return err
	}

	for _, k := range knownEntryFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		a.Extra = raw
	}

	*e = Entry(a)
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(entryAlias(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, owned := merged[k]; !owned {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// entryWire mirrors Entry without omitempty tags. Wholesale updates marshal
// through it so fields edited back to their zero values still appear in the
// patch and clear the stored value instead of being dropped.
type entryWire struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Language    string      `json:"language"`
	Genre       string      `json:"genre"`
	ContentType ContentType `json:"contentType"`
	Year        int         `json:"year"`
	Description string      `json:"description"`

	Rating      float64 `json:"rating"`
	Recommended bool    `json:"recommended"`

	IMDBRating           *float64 `json:"imdbRating"`
	RottenTomatoesRating *int     `json:"rottenTomatoesRating"`
	MetacriticRating     *int     `json:"metacriticRating"`

	StreamingPlatforms []string `json:"streamingPlatforms"`

	Director   string `json:"director"`
	Cast       string `json:"cast"`
	Runtime    string `json:"runtime"`
	Budget     string `json:"budget"`
	BoxOffice  string `json:"boxOffice"`
	Awards     string `json:"awards"`
	TrailerURL string `json:"trailerUrl"`

	Thumbnail string `json:"thumbnail"`
	Photo     string `json:"photo"`

	Extra map[string]json.RawMessage `json:"-"`
}

// FullPatch marshals the entry with every owned field present, zero values
// included, so merging it replaces the stored record's own fields wholesale.
// Extra fields ride along the same way MarshalJSON carries them.
func (e Entry) FullPatch() (json.RawMessage, error) {
	known, err := json.Marshal(entryWire(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, owned := merged[k]; !owned {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// coerceYear normalizes a year value that may be a number, a numeric string,
// or an empty string into a plain JSON number.
func coerceYear(raw json.RawMessage) json.RawMessage {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return raw // already a number or null
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return json.RawMessage(strconv.Itoa(n))
	}
	return json.RawMessage("0")
}

// DefaultRating is the user rating assigned at creation when none was given.
const DefaultRating = 4.0

// Prepared returns a copy ready for insertion: ID assigned when absent,
// content type and rating defaulted, platforms deduplicated.
func (e Entry) Prepared() Entry {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.ContentType == "" {
		e.ContentType = ContentTypeMovie
	}
	if e.Rating == 0 {
		e.Rating = DefaultRating
	}
	e.StreamingPlatforms = DedupeStrings(e.StreamingPlatforms)
	return e
}

// Merge overlays a JSON patch onto the entry and returns the result. The ID
// is immutable; patch fields the entry does not own land in Extra, so newer
// client variants can write through older ones.
func (e Entry) Merge(patch json.RawMessage) (Entry, error) {
	base, err := json.Marshal(e)
	if err != nil {
		return e, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return e, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return e, err
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return e, err
	}
	var updated Entry
	if err := json.Unmarshal(out, &updated); err != nil {
		return e, err
	}
	updated.Normalize()
	return updated, nil
}

// Normalize back-fills defaults missing from older persisted records.
func (e *Entry) Normalize() {
	if e.ContentType == "" {
		e.ContentType = ContentTypeMovie
	}
	e.StreamingPlatforms = DedupeStrings(e.StreamingPlatforms)
}

// YearString formats the year for display, blank when unset.
func (e Entry) YearString() string {
	if e.Year == 0 {
		return ""
	}
	return strconv.Itoa(e.Year)
}

// HasExternalRatings reports whether any of the three external review scores
// is recorded on the entry itself.
func (e Entry) HasExternalRatings() bool {
	return e.IMDBRating != nil || e.RottenTomatoesRating != nil || e.MetacriticRating != nil
}

// Describe returns the secondary line shown under the title in list views.
func (e Entry) Describe() string {
	if e.Year > 0 {
		return fmt.Sprintf("%s · %d", e.Genre, e.Year)
	}
	return e.Genre
}

// DedupeStrings removes duplicates while preserving first-seen order.
func DedupeStrings(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a time-derived identifier compatible with records created by
// earlier client variants (millisecond timestamps). Strictly increasing
// within a process so rapid inserts never collide.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
