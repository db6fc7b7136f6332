package catalog

import "github.com/cinelog/cinelog/internal/domain"

// Platform is one streaming service row on the detail view.
type Platform struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Available bool   `json:"available"`
}

// ExternalRatings is the review-score triple shown on the detail view.
type ExternalRatings struct {
	IMDB           float64 `json:"imdb"`
	RottenTomatoes int     `json:"rottenTomatoes"`
	Metacritic     int     `json:"metacritic"`
}

// DisplayEntry is an entry enriched with display-only fallbacks. The
// underlying record is never modified by enrichment.
type DisplayEntry struct {
	domain.Entry
	Platforms []Platform
	Ratings   ExternalRatings
}

// Demo metadata for well-known titles, used when a record carries none of its
// own. Keyed by exact title.
var mockPlatforms = map[string][]Platform{
	"Inception": {
		{Name: "Netflix", Icon: "🎬", Available: true},
		{Name: "Amazon Prime", Icon: "📺", Available: true},
		{Name: "Disney+", Icon: "🏰", Available: false},
		{Name: "HBO Max", Icon: "📺", Available: true},
	},
	"Parasite": {
		{Name: "Netflix", Icon: "🎬", Available: true},
		{Name: "Hulu", Icon: "📺", Available: true},
		{Name: "Amazon Prime", Icon: "📺", Available: false},
		{Name: "Apple TV+", Icon: "🍎", Available: false},
	},
	"The Dark Knight": {
		{Name: "Netflix", Icon: "🎬", Available: false},
		{Name: "Amazon Prime", Icon: "📺", Available: true},
		{Name: "HBO Max", Icon: "📺", Available: true},
		{Name: "Disney+", Icon: "🏰", Available: false},
	},
	"La La Land": {
		{Name: "Netflix", Icon: "🎬", Available: true},
		{Name: "Amazon Prime", Icon: "📺", Available: true},
		{Name: "Hulu", Icon: "📺", Available: false},
		{Name: "Apple TV+", Icon: "🍎", Available: true},
	},
	"Interstellar": {
		{Name: "Netflix", Icon: "🎬", Available: true},
		{Name: "Amazon Prime", Icon: "📺", Available: true},
		{Name: "HBO Max", Icon: "📺", Available: false},
		{Name: "Paramount+", Icon: "📺", Available: true},
	},
	"John Wick": {
		{Name: "Netflix", Icon: "🎬", Available: false},
		{Name: "Amazon Prime", Icon: "📺", Available: true},
		{Name: "Peacock", Icon: "📺", Available: true},
		{Name: "Hulu", Icon: "📺", Available: false},
	},
}

var mockRatings = map[string]ExternalRatings{
	"Inception":       {IMDB: 8.8, RottenTomatoes: 87, Metacritic: 74},
	"Parasite":        {IMDB: 8.6, RottenTomatoes: 99, Metacritic: 96},
	"The Dark Knight": {IMDB: 9.0, RottenTomatoes: 94, Metacritic: 84},
	"La La Land":      {IMDB: 8.0, RottenTomatoes: 91, Metacritic: 94},
	"Interstellar":    {IMDB: 8.6, RottenTomatoes: 73, Metacritic: 74},
	"John Wick":       {IMDB: 7.4, RottenTomatoes: 86, Metacritic: 68},
}

// unavailablePlatforms is the placeholder when neither the record nor the
// mock table knows anything.
func unavailablePlatforms() []Platform {
	return []Platform{
		{Name: "Netflix", Icon: "🎬", Available: false},
		{Name: "Amazon Prime", Icon: "📺", Available: false},
		{Name: "Hulu", Icon: "📺", Available: false},
		{Name: "Disney+", Icon: "🏰", Available: false},
	}
}

// FindByID locates one entry in a snapshot.
func FindByID(entries []domain.Entry, id string) (domain.Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entry{}, domain.ErrEntryNotFound
}

// EnrichForDisplay fills display-only gaps: curated platforms win, then the
// per-title mock table, then the all-unavailable placeholder. Ratings use the
// record's own scores if it has any (absent ones as zero); only a record with
// no scores at all falls back to the mock triple, and then to zeros.
func EnrichForDisplay(entry domain.Entry) DisplayEntry {
	d := DisplayEntry{Entry: entry}

	switch {
	case len(entry.StreamingPlatforms) > 0:
		for _, name := range entry.StreamingPlatforms {
			d.Platforms = append(d.Platforms, Platform{Name: name, Icon: "🎬", Available: true})
		}
	default:
		if mocked, ok := mockPlatforms[entry.Title]; ok {
			d.Platforms = mocked
		} else {
			d.Platforms = unavailablePlatforms()
		}
	}

	if entry.HasExternalRatings() {
		if entry.IMDBRating != nil {
			d.Ratings.IMDB = *entry.IMDBRating
		}
		if entry.RottenTomatoesRating != nil {
			d.Ratings.RottenTomatoes = *entry.RottenTomatoesRating
		}
		if entry.MetacriticRating != nil {
			d.Ratings.Metacritic = *entry.MetacriticRating
		}
	} else if mocked, ok := mockRatings[entry.Title]; ok {
		d.Ratings = mocked
	}

	return d
}
