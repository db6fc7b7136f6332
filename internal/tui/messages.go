package tui

import "github.com/cinelog/cinelog/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// EntriesLoadedMsg carries a fresh catalog snapshot
type EntriesLoadedMsg struct {
	Entries []domain.Entry
}

// EntrySavedMsg signals that a create or edit was persisted
type EntrySavedMsg struct {
	Entry   domain.Entry
	Created bool
}

// EntryRemovedMsg signals that an entry was deleted
type EntryRemovedMsg struct {
	ID    string
	Title string
}

// CatalogChangedMsg signals that the catalog changed outside this view
// (another writer on the same store), so the snapshot should be re-read
type CatalogChangedMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
