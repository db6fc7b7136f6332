package domain

import "encoding/json"

// Store owns the persisted catalog collection. The bolt implementation keeps
// it in an embedded database; the REST implementation talks to a cinelogd
// instance. Both present identical semantics so the backend can be swapped at
// configuration time without touching queries, detail resolution, or
// validation.
type Store interface {
	// LoadAll returns the full collection in stored order. Absent or corrupt
	// persisted data is replaced by the seed entries rather than reported.
	LoadAll() ([]Entry, error)

	// SaveAll overwrites the persisted collection in a single write.
	SaveAll(entries []Entry) error

	// Add appends an entry, assigning an ID when absent, and persists.
	Add(entry Entry) (Entry, error)

	// Update merges a JSON patch into the entry with the given ID and
	// persists. Returns ErrEntryNotFound when no entry matches.
	Update(id string, patch json.RawMessage) (Entry, error)

	// Remove deletes the entry with the given ID and persists, reporting
	// whether anything was deleted. Removing a missing ID is a no-op.
	Remove(id string) (bool, error)

	Close() error
}
