package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/notify"
	"github.com/cinelog/cinelog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.OpenBolt("", logger)
	require.NoError(t, err)

	svc := catalog.NewService(st, notify.New(), logger)
	ts := httptest.NewServer(NewServer(svc, logger).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getEntries(t *testing.T, ts *httptest.Server, path string) []domain.Entry {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	return entries
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Error
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthcheck")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestListEntries(t *testing.T) {
	ts := newTestServer(t)

	entries := getEntries(t, ts, "/movies")
	require.Len(t, entries, 2)
	assert.Equal(t, "Inception", entries[0].Title)
	assert.Equal(t, "Parasite", entries[1].Title)
}

func TestListEntriesWithFilters(t *testing.T) {
	ts := newTestServer(t)

	korean := getEntries(t, ts, "/movies?language=Korean")
	require.Len(t, korean, 1)
	assert.Equal(t, "Parasite", korean[0].Title)

	scifi := getEntries(t, ts, "/movies?genre=Sci-Fi")
	require.Len(t, scifi, 1)
	assert.Equal(t, "Inception", scifi[0].Title)

	none := getEntries(t, ts, "/movies?language=French")
	assert.Empty(t, none)
}

func TestCreateEntry(t *testing.T) {
	ts := newTestServer(t)

	body := `{"title":"Oldboy","language":"Korean","genre":"Thriller","contentType":"movie","year":2003}`
	resp, err := http.Post(ts.URL+"/movies", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Oldboy", created.Title)
	assert.Equal(t, domain.DefaultRating, created.Rating)

	assert.Len(t, getEntries(t, ts, "/movies"), 3)
}

func TestCreateEntryValidation(t *testing.T) {
	ts := newTestServer(t)

	body := `{"language":"Korean","genre":"Thriller"}`
	resp, err := http.Post(ts.URL+"/movies", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Title is required", payload.Fields["title"])
}

func TestCreateEntryValidationSummaryIsDeterministic(t *testing.T) {
	ts := newTestServer(t)

	// Field names are sorted, so the same body always yields the same summary.
	want := "genre: Genre is required; language: Language is required; title: Title is required"
	for i := 0; i < 3; i++ {
		resp, err := http.Post(ts.URL+"/movies", "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, want, decodeError(t, resp))
		resp.Body.Close()
	}
}

func TestUpdateEntry(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/movies/1", bytes.NewBufferString(`{"year":2011}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, 2011, updated.Year)
	assert.Equal(t, "Inception", updated.Title)
}

func TestUpdateEntryNotFound(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/movies/999", bytes.NewBufferString(`{"year":2011}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Movie not found", decodeError(t, resp))
}

func TestDeleteEntry(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/movies/1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, getEntries(t, ts, "/movies"), 1)

	// A second delete of the same id is a 404 on the wire.
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Movie not found", decodeError(t, resp))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
