package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/notify"
	"github.com/cinelog/cinelog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.OpenBolt("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return NewService(st, notify.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceStartsWithSeedCatalog(t *testing.T) {
	svc := newTestService(t)

	entries, err := svc.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Inception", entries[0].Title)
	assert.Equal(t, "Parasite", entries[1].Title)
}

func TestServicePublishesAfterEachMutation(t *testing.T) {
	svc := newTestService(t)

	published := 0
	svc.Subscribe(func() { published++ })

	created, err := svc.Add(domain.Entry{Title: "Oldboy", Language: "Korean", Genre: "Thriller"})
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	created.Year = 2003
	_, err = svc.UpdateEntry(created)
	require.NoError(t, err)
	assert.Equal(t, 2, published)

	removed, err := svc.Remove(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 3, published)
}

func TestServiceUpdateEntryClearsBlankedFields(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Add(domain.Entry{
		Title:       "Oldboy",
		Language:    "Korean",
		Genre:       "Thriller",
		Year:        2003,
		Description: "A man hunts his captor after fifteen years locked away.",
		Recommended: true,
	})
	require.NoError(t, err)

	edited := created
	edited.Year = 0
	edited.Description = ""
	edited.Recommended = false

	updated, err := svc.UpdateEntry(edited)
	require.NoError(t, err)
	assert.Zero(t, updated.Year)
	assert.Empty(t, updated.Description)
	assert.False(t, updated.Recommended)

	// The cleared values are what storage now holds, not the old ones.
	entries, err := svc.Entries()
	require.NoError(t, err)
	got, err := FindByID(entries, created.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Year)
	assert.Empty(t, got.Description)
	assert.False(t, got.Recommended)
}

func TestServiceRemoveMissingPublishesNothing(t *testing.T) {
	svc := newTestService(t)

	published := 0
	svc.Subscribe(func() { published++ })

	removed, err := svc.Remove("does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, published)
}

func TestServiceUpdatePreservesUnknownFields(t *testing.T) {
	svc := newTestService(t)

	updated, err := svc.Update("1", []byte(`{"year":2011,"watchCount":3}`))
	require.NoError(t, err)
	assert.Equal(t, 2011, updated.Year)
	assert.Contains(t, updated.Extra, "watchCount")

	// The unknown field survives the round trip through storage.
	entries, err := svc.Entries()
	require.NoError(t, err)
	got, err := FindByID(entries, "1")
	require.NoError(t, err)
	assert.Contains(t, got.Extra, "watchCount")
}

func TestServiceUpdateUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update("missing", []byte(`{"year":2000}`))
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestServiceReplaceAll(t *testing.T) {
	svc := newTestService(t)

	published := 0
	svc.Subscribe(func() { published++ })

	require.NoError(t, svc.ReplaceAll(nil))
	assert.Equal(t, 1, published)

	entries, err := svc.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
