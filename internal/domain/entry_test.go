package domain

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUnmarshalYearVariants(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"number", `{"id":"1","title":"A","year":2010}`, 2010},
		{"numeric string", `{"id":"1","title":"A","year":"2019"}`, 2019},
		{"padded string", `{"id":"1","title":"A","year":" 1999 "}`, 1999},
		{"empty string", `{"id":"1","title":"A","year":""}`, 0},
		{"absent", `{"id":"1","title":"A"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entry
			require.NoError(t, json.Unmarshal([]byte(tt.json), &e))
			assert.Equal(t, tt.want, e.Year)
		})
	}
}

func TestEntryExtraRoundTrip(t *testing.T) {
	in := `{"id":"1","title":"Inception","language":"English","genre":"Sci-Fi","watchCount":3,"customTag":"favorite"}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	require.Contains(t, e.Extra, "watchCount")
	require.Contains(t, e.Extra, "customTag")

	out, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, `3`, string(raw["watchCount"]))
	assert.JSONEq(t, `"favorite"`, string(raw["customTag"]))
	assert.JSONEq(t, `"Inception"`, string(raw["title"]))
}

func TestEntryExtraNeverShadowsOwnedFields(t *testing.T) {
	e := Entry{
		ID:    "1",
		Title: "Real Title",
		Extra: map[string]json.RawMessage{"title": json.RawMessage(`"stale"`)},
	}

	out, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, `"Real Title"`, string(raw["title"]))
}

func TestEntryMerge(t *testing.T) {
	e := Entry{ID: "1", Title: "Inception", Language: "English", Genre: "Sci-Fi", Year: 2010}

	t.Run("updates own fields", func(t *testing.T) {
		got, err := e.Merge(json.RawMessage(`{"year":2011,"genre":"Thriller"}`))
		require.NoError(t, err)
		assert.Equal(t, 2011, got.Year)
		assert.Equal(t, "Thriller", got.Genre)
		assert.Equal(t, "Inception", got.Title)
	})

	t.Run("id is immutable", func(t *testing.T) {
		got, err := e.Merge(json.RawMessage(`{"id":"999","title":"Other"}`))
		require.NoError(t, err)
		assert.Equal(t, "1", got.ID)
		assert.Equal(t, "Other", got.Title)
	})

	t.Run("unknown patch fields land in Extra", func(t *testing.T) {
		got, err := e.Merge(json.RawMessage(`{"watchCount":5}`))
		require.NoError(t, err)
		require.Contains(t, got.Extra, "watchCount")
		assert.JSONEq(t, `5`, string(got.Extra["watchCount"]))
	})

	t.Run("malformed patch fails", func(t *testing.T) {
		_, err := e.Merge(json.RawMessage(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestFullPatchCarriesZeroValues(t *testing.T) {
	e := Entry{ID: "1", Title: "Inception", Language: "English", Genre: "Sci-Fi"}

	patch, err := e.FullPatch()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(patch, &raw))
	assert.JSONEq(t, `""`, string(raw["description"]))
	assert.JSONEq(t, `0`, string(raw["year"]))
	assert.JSONEq(t, `false`, string(raw["recommended"]))
	assert.JSONEq(t, `null`, string(raw["imdbRating"]))
}

func TestFullPatchMergeClearsFields(t *testing.T) {
	imdb := 8.8
	stored := Entry{
		ID:          "1",
		Title:       "Inception",
		Language:    "English",
		Genre:       "Sci-Fi",
		Year:        2010,
		Description: "A thief steals secrets through dreams.",
		Recommended: true,
		IMDBRating:  &imdb,
		Extra:       map[string]json.RawMessage{"watchCount": json.RawMessage(`3`)},
	}

	edited := stored
	edited.Year = 0
	edited.Description = ""
	edited.Recommended = false
	edited.IMDBRating = nil

	patch, err := edited.FullPatch()
	require.NoError(t, err)

	got, err := stored.Merge(patch)
	require.NoError(t, err)
	assert.Zero(t, got.Year)
	assert.Empty(t, got.Description)
	assert.False(t, got.Recommended)
	assert.Nil(t, got.IMDBRating)
	assert.Contains(t, got.Extra, "watchCount")
}

func TestPreparedDefaults(t *testing.T) {
	e := Entry{Title: "New", StreamingPlatforms: []string{"Netflix", "Hulu", "Netflix"}}
	got := e.Prepared()

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, ContentTypeMovie, got.ContentType)
	assert.Equal(t, DefaultRating, got.Rating)
	assert.Equal(t, []string{"Netflix", "Hulu"}, got.StreamingPlatforms)
}

func TestPreparedKeepsExplicitValues(t *testing.T) {
	e := Entry{ID: "42", Title: "New", ContentType: ContentTypeAnime, Rating: 2.5}
	got := e.Prepared()

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, ContentTypeAnime, got.ContentType)
	assert.Equal(t, 2.5, got.Rating)
}

func TestNewIDStrictlyIncreasing(t *testing.T) {
	prev := int64(0)
	for i := 0; i < 100; i++ {
		id, err := strconv.ParseInt(NewID(), 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestDedupeStringsDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "a", "c"}
	got := DedupeStrings(in)

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []string{"a", "b", "a", "c"}, in)
}
