package validate

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() EntryForm {
	return EntryForm{
		Title:       "Oldboy",
		Language:    "Korean",
		Genre:       "Thriller",
		ContentType: "movie",
		Year:        "2003",
		Rating:      "4.5",
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EntryForm)
		field  string
		msg    string
	}{
		{"missing title", func(f *EntryForm) { f.Title = "  " }, "title", "Title is required"},
		{"missing language", func(f *EntryForm) { f.Language = "" }, "language", "Language is required"},
		{"missing genre", func(f *EntryForm) { f.Genre = "" }, "genre", "Genre is required"},
		{"missing type", func(f *EntryForm) { f.ContentType = "" }, "contentType", "Type is required"},
		{"year too old", func(f *EntryForm) { f.Year = "1700" }, "year", "Enter a valid year"},
		{"year not numeric", func(f *EntryForm) { f.Year = "soon" }, "year", "Enter a valid year"},
		{"rating above scale", func(f *EntryForm) { f.Rating = "5.5" }, "rating", "Rating must be between 0 and 5"},
		{"imdb above scale", func(f *EntryForm) { f.IMDBRating = "10.1" }, "imdbRating", "IMDb rating must be between 0 and 10"},
		{"rotten tomatoes above scale", func(f *EntryForm) { f.RottenTomatoes = "101" }, "rottenTomatoesRating", "Rotten Tomatoes score must be between 0 and 100"},
		{"metacritic negative", func(f *EntryForm) { f.Metacritic = "-1" }, "metacriticRating", "Metacritic score must be between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			v := ValidateEntry(form)
			require.False(t, v.Valid())
			require.Len(t, v.Errors, 1)
			assert.Equal(t, tt.msg, v.Errors[tt.field])
		})
	}
}

func TestValidateEntryAcceptsBoundaries(t *testing.T) {
	boundaries := []func(*EntryForm){
		func(f *EntryForm) { f.Year = "1850" },
		func(f *EntryForm) { f.Year = strconv.Itoa(MinYear) },
		func(f *EntryForm) { f.Year = strconv.Itoa(time.Now().Year() + 1) },
		func(f *EntryForm) { f.Year = "" },
		func(f *EntryForm) { f.Rating = "0" },
		func(f *EntryForm) { f.Rating = "5" },
		func(f *EntryForm) { f.Rating = "" },
		func(f *EntryForm) { f.IMDBRating = "10" },
		func(f *EntryForm) { f.RottenTomatoes = "100" },
		func(f *EntryForm) { f.Metacritic = "0" },
	}

	for i, mutate := range boundaries {
		t.Run(fmt.Sprintf("boundary_%d", i), func(t *testing.T) {
			form := validForm()
			mutate(&form)
			assert.True(t, ValidateEntry(form).Valid())
		})
	}
}

func TestValidateEntryOnlyMissingTitle(t *testing.T) {
	form := validForm()
	form.Title = ""

	v := ValidateEntry(form)
	require.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "Title is required"}, v.Errors)
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("title", "first")
	v.AddError("title", "second")
	assert.Equal(t, "first", v.Errors["title"])
}

func TestFormEntryConversion(t *testing.T) {
	form := validForm()
	form.IMDBRating = "8.4"
	form.RottenTomatoes = "82"
	form.StreamingPlatforms = []string{"Netflix", "Netflix", "Hulu"}

	e := form.Entry()
	assert.Equal(t, "Oldboy", e.Title)
	assert.Equal(t, domain.ContentTypeMovie, e.ContentType)
	assert.Equal(t, 2003, e.Year)
	assert.Equal(t, 4.5, e.Rating)
	require.NotNil(t, e.IMDBRating)
	assert.Equal(t, 8.4, *e.IMDBRating)
	require.NotNil(t, e.RottenTomatoesRating)
	assert.Equal(t, 82, *e.RottenTomatoesRating)
	assert.Nil(t, e.MetacriticRating)
	assert.Equal(t, []string{"Netflix", "Hulu"}, e.StreamingPlatforms)
}

func TestFormFromEntryRoundTrip(t *testing.T) {
	imdb := 8.6
	rt := 99
	src := domain.Entry{
		ID:                   "2",
		Title:                "Parasite",
		Language:             "Korean",
		Genre:                "Thriller",
		ContentType:          domain.ContentTypeMovie,
		Year:                 2019,
		Rating:               5,
		Recommended:          true,
		IMDBRating:           &imdb,
		RottenTomatoesRating: &rt,
		StreamingPlatforms:   []string{"Netflix", "Hulu"},
	}

	got := FormFromEntry(src).Entry()
	got.ID = src.ID // identity is carried by the caller, not the form

	assert.Equal(t, src, got)
}
