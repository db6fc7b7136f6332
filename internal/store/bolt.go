package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketCatalog = []byte("catalog")
	keyEntries    = []byte("entries")
)

// Bolt implements domain.Store on an embedded BoltDB file. The whole
// collection lives under a single key as a JSON array, so every mutation is a
// full rewrite of the slot — the same shape as the browser-storage layout it
// replaces, and cheap at catalog scale.
type Bolt struct {
	db     *bolt.DB
	logger *slog.Logger

	mu sync.Mutex // serializes read-modify-write cycles

	// Memory-only slot when opened without a path (tests, ephemeral runs).
	mem []byte
}

// OpenBolt opens (or creates) the catalog database at path. An empty path
// gives a memory-only store with no persistence.
func OpenBolt(path string, logger *slog.Logger) (*Bolt, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &Bolt{logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCatalog)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db, logger: logger}, nil
}

func (s *Bolt) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Bolt) LoadAll() ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Bolt) SaveAll(entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entries)
}

func (s *Bolt) Add(entry domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return domain.Entry{}, err
	}
	entry = entry.Prepared()
	entries = append(entries, entry)
	if err := s.saveLocked(entries); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *Bolt) Update(id string, patch json.RawMessage) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return domain.Entry{}, err
	}
	for i, e := range entries {
		if e.ID != id {
			continue
		}
		updated, err := e.Merge(patch)
		if err != nil {
			return domain.Entry{}, err
		}
		entries[i] = updated
		if err := s.saveLocked(entries); err != nil {
			return domain.Entry{}, err
		}
		return updated, nil
	}
	return domain.Entry{}, domain.ErrEntryNotFound
}

func (s *Bolt) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false, nil // deleting a missing id is a no-op
	}
	if err := s.saveLocked(kept); err != nil {
		return false, err
	}
	return true, nil
}

// loadLocked reads the slot, falling back to the seed catalog when the slot
// is absent or unreadable. The fallback is persisted immediately so later
// reads agree with what the caller saw.
func (s *Bolt) loadLocked() ([]domain.Entry, error) {
	data := s.readSlot()
	if data == nil {
		return s.resetToSeed()
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("persisted catalog is malformed, reseeding", "error", err)
		return s.resetToSeed()
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return entries, nil
}

func (s *Bolt) resetToSeed() ([]domain.Entry, error) {
	seed := domain.SeedEntries()
	if err := s.saveLocked(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *Bolt) saveLocked(entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mem = data
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCatalog).Put(keyEntries, data)
	})
}

func (s *Bolt) readSlot() []byte {
	if s.db == nil {
		return s.mem
	}
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketCatalog).Get(keyEntries); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data
}
