package catalog

import (
	"encoding/json"
	"log/slog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/notify"
)

// Service is the single mutation path into the catalog. It persists through
// the configured store and broadcasts a change signal after every successful
// write, so each mounted view re-reads its snapshot.
type Service struct {
	store    domain.Store
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewService creates a catalog service over the given store.
func NewService(store domain.Store, notifier *notify.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.New()
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Subscribe registers a change handler, returning its unsubscribe function.
func (s *Service) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// Entries returns a fresh snapshot of the collection.
func (s *Service) Entries() ([]domain.Entry, error) {
	entries, err := s.store.LoadAll()
	if err != nil {
		s.logger.Error("failed to load catalog", "error", err)
		return nil, err
	}
	return entries, nil
}

// Add persists a new entry and returns it with its assigned ID and defaults.
func (s *Service) Add(entry domain.Entry) (domain.Entry, error) {
	created, err := s.store.Add(entry)
	if err != nil {
		s.logger.Error("failed to add entry", "error", err, "title", entry.Title)
		return domain.Entry{}, err
	}
	s.logger.Info("added entry", "id", created.ID, "title", created.Title)
	s.notifier.Publish()
	return created, nil
}

// Update merges a JSON patch into the entry with the given ID.
func (s *Service) Update(id string, patch json.RawMessage) (domain.Entry, error) {
	updated, err := s.store.Update(id, patch)
	if err != nil {
		if err != domain.ErrEntryNotFound {
			s.logger.Error("failed to update entry", "error", err, "id", id)
		}
		return domain.Entry{}, err
	}
	s.logger.Info("updated entry", "id", id)
	s.notifier.Publish()
	return updated, nil
}

// UpdateEntry replaces an entry's own fields wholesale. The patch carries
// every owned field, zero values included, so edits that blank a field clear
// the stored value, while unknown fields already on the record survive.
func (s *Service) UpdateEntry(entry domain.Entry) (domain.Entry, error) {
	patch, err := entry.FullPatch()
	if err != nil {
		return domain.Entry{}, err
	}
	return s.Update(entry.ID, patch)
}

// Remove deletes an entry, reporting whether anything was deleted. Removing
// an unknown ID is a no-op and publishes no change.
func (s *Service) Remove(id string) (bool, error) {
	removed, err := s.store.Remove(id)
	if err != nil {
		s.logger.Error("failed to remove entry", "error", err, "id", id)
		return false, err
	}
	if removed {
		s.logger.Info("removed entry", "id", id)
		s.notifier.Publish()
	}
	return removed, nil
}

// ReplaceAll overwrites the whole collection in one write.
func (s *Service) ReplaceAll(entries []domain.Entry) error {
	if err := s.store.SaveAll(entries); err != nil {
		s.logger.Error("failed to replace catalog", "error", err)
		return err
	}
	s.logger.Info("replaced catalog", "count", len(entries))
	s.notifier.Publish()
	return nil
}
