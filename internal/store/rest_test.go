package store

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/cinelog/cinelog/internal/api"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The REST store is exercised against the real API server over a memory-only
// local store, the same pairing the api backend runs in production.
func newRESTStore(t *testing.T) *REST {
	t.Helper()
	logger := discardLogger()
	local, err := OpenBolt("", logger)
	require.NoError(t, err)

	svc := catalog.NewService(local, notify.New(), logger)
	ts := httptest.NewServer(api.NewServer(svc, logger).Routes())
	t.Cleanup(ts.Close)

	return OpenREST(ts.URL, logger)
}

func TestRESTLoadAll(t *testing.T) {
	s := newRESTStore(t)

	entries, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Inception", entries[0].Title)
}

func TestRESTAddUpdateRemove(t *testing.T) {
	s := newRESTStore(t)

	created, err := s.Add(domain.Entry{Title: "Oldboy", Language: "Korean", Genre: "Thriller"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultRating, created.Rating)

	updated, err := s.Update(created.ID, json.RawMessage(`{"year":2003}`))
	require.NoError(t, err)
	assert.Equal(t, 2003, updated.Year)

	_, err = s.Update("missing", json.RawMessage(`{"year":2000}`))
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	removed, err := s.Remove(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	entries, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// The remote 404 maps to the local no-op semantics.
	removed, err = s.Remove(created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRESTSaveAllReplacesCollection(t *testing.T) {
	s := newRESTStore(t)

	err := s.SaveAll([]domain.Entry{{Title: "Only One", Language: "English", Genre: "Drama"}})
	require.NoError(t, err)

	entries, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Only One", entries[0].Title)
}
