package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/domain"
)

// LoadEntriesCmd re-reads the catalog snapshot
func LoadEntriesCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.Entries()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading catalog"}
		}
		return EntriesLoadedMsg{Entries: entries}
	}
}

// CreateEntryCmd persists a new entry
func CreateEntryCmd(svc *catalog.Service, entry domain.Entry) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Add(entry)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding entry"}
		}
		return EntrySavedMsg{Entry: created, Created: true}
	}
}

// UpdateEntryCmd persists edits to an existing entry
func UpdateEntryCmd(svc *catalog.Service, entry domain.Entry) tea.Cmd {
	return func() tea.Msg {
		updated, err := svc.UpdateEntry(entry)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating entry"}
		}
		return EntrySavedMsg{Entry: updated}
	}
}

// RemoveEntryCmd deletes an entry
func RemoveEntryCmd(svc *catalog.Service, id, title string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Remove(id); err != nil {
			return ErrMsg{Err: err, Context: "removing entry"}
		}
		return EntryRemovedMsg{ID: id, Title: title}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
