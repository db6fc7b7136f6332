package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/search"
	"github.com/cinelog/cinelog/internal/tui/components"
	"github.com/cinelog/cinelog/internal/validate"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateSearching
	StateDetail
	StateForm
	StateConfirmDelete
	StateHelp
)

// Chrome: one header line plus one footer line.
const ChromeHeight = 2

// sortFields is the cycle order for the 's' key.
var sortFields = []string{"title", "year", "language", "genre"}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	Svc *catalog.Service

	// UI components
	Browser components.Browser
	Detail  components.Detail
	Form    components.Form

	FilterInput textinput.Model
	SearchInput textinput.Model

	// Data: the raw snapshot the views are derived from
	entries []domain.Entry

	// View state
	filterText      string
	typeFilter      domain.ContentType
	sortField       string
	sortOrder       catalog.SortOrder
	groupByLanguage bool

	deleteTarget    *domain.Entry
	selectAfterLoad string

	// Dimensions
	Width  int
	Height int

	// Status bar
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates the application model with the configured view defaults.
func NewModel(svc *catalog.Service, defaultSort string, defaultOrder catalog.SortOrder) Model {
	if defaultSort == "" {
		defaultSort = "title"
	}
	if defaultOrder == "" {
		defaultOrder = catalog.SortAsc
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "title or genre"

	srch := textinput.New()
	srch.Prompt = "search: "
	srch.Placeholder = "fuzzy title match"

	return Model{
		State:       StateBrowsing,
		Svc:         svc,
		Browser:     components.NewBrowser(),
		Detail:      components.NewDetail(),
		Form:        components.NewForm(),
		FilterInput: filter,
		SearchInput: srch,
		sortField:   defaultSort,
		sortOrder:   defaultOrder,
	}
}

// Init loads the first snapshot
func (m Model) Init() tea.Cmd {
	return LoadEntriesCmd(m.Svc)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case EntriesLoadedMsg:
		m.entries = msg.Entries
		m.rebuildRows()
		if m.selectAfterLoad != "" {
			m.Browser.SelectID(m.selectAfterLoad)
			m.selectAfterLoad = ""
		}
		if m.State == StateDetail {
			m.refreshDetail()
		}
		return m, nil

	case CatalogChangedMsg:
		return m, LoadEntriesCmd(m.Svc)

	case EntrySavedMsg:
		m.State = StateBrowsing
		m.selectAfterLoad = msg.Entry.ID
		if msg.Created {
			m.StatusMsg = "Added: " + msg.Entry.Title
		} else {
			m.StatusMsg = "Updated: " + msg.Entry.Title
		}
		m.StatusIsErr = false
		return m, tea.Batch(LoadEntriesCmd(m.Svc), ClearStatusCmd(3*time.Second))

	case EntryRemovedMsg:
		m.State = StateBrowsing
		m.deleteTarget = nil
		m.StatusMsg = "Deleted: " + msg.Title
		m.StatusIsErr = false
		return m, tea.Batch(LoadEntriesCmd(m.Svc), ClearStatusCmd(3*time.Second))

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape) || key.Matches(msg, Keys.Help) || key.Matches(msg, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmDelete:
		switch {
		case key.Matches(msg, Keys.Confirm):
			if m.deleteTarget != nil {
				return m, RemoveEntryCmd(m.Svc, m.deleteTarget.ID, m.deleteTarget.Title)
			}
			m.State = StateBrowsing
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
			m.deleteTarget = nil
		}
		return m, nil

	case StateDetail:
		return m.handleDetailKeys(msg)

	case StateForm:
		return m.handleFormKeys(msg)

	case StateFiltering:
		return m.handleFilterKeys(msg)

	case StateSearching:
		return m.handleSearchKeys(msg)
	}

	return m.handleBrowseKeys(msg)
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Up):
		m.Browser.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.Browser.MoveDown()
	case key.Matches(msg, Keys.Home):
		m.Browser.MoveTop()
	case key.Matches(msg, Keys.End):
		m.Browser.MoveBottom()

	case key.Matches(msg, Keys.Enter):
		if m.Browser.Selected() != nil {
			m.State = StateDetail
			m.refreshDetail()
		}

	case key.Matches(msg, Keys.Filter):
		m.State = StateFiltering
		m.FilterInput.SetValue(m.filterText)
		m.FilterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		m.SearchInput.SetValue("")
		m.SearchInput.Focus()
		m.rebuildRows()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Escape):
		if m.filterText != "" {
			m.filterText = ""
			m.rebuildRows()
		}

	case key.Matches(msg, Keys.Sort):
		m.sortField = nextSortField(m.sortField)
		m.rebuildRows()

	case key.Matches(msg, Keys.Order):
		if m.sortOrder == catalog.SortAsc {
			m.sortOrder = catalog.SortDesc
		} else {
			m.sortOrder = catalog.SortAsc
		}
		m.rebuildRows()

	case key.Matches(msg, Keys.Group):
		m.groupByLanguage = !m.groupByLanguage
		m.rebuildRows()

	case key.Matches(msg, Keys.CycleType):
		m.typeFilter = nextTypeFilter(m.typeFilter)
		m.rebuildRows()

	case key.Matches(msg, Keys.Add):
		m.Form.Reset()
		m.Form.SetSize(m.Width)
		m.State = StateForm
		return m, textinput.Blink

	case key.Matches(msg, Keys.Edit):
		if sel := m.Browser.Selected(); sel != nil {
			m.Form.SetEntry(*sel)
			m.Form.SetSize(m.Width)
			m.State = StateForm
			return m, textinput.Blink
		}

	case key.Matches(msg, Keys.Delete):
		if sel := m.Browser.Selected(); sel != nil {
			m.deleteTarget = sel
			m.State = StateConfirmDelete
		}

	case key.Matches(msg, Keys.Refresh):
		return m, LoadEntriesCmd(m.Svc)
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		m.State = StateBrowsing
	case key.Matches(msg, Keys.Edit):
		if sel := m.Browser.Selected(); sel != nil {
			m.Form.SetEntry(*sel)
			m.Form.SetSize(m.Width)
			m.State = StateForm
			return m, textinput.Blink
		}
	case key.Matches(msg, Keys.Delete):
		if sel := m.Browser.Selected(); sel != nil {
			m.deleteTarget = sel
			m.State = StateConfirmDelete
		}
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.State = StateBrowsing
		return m, nil

	case key.Matches(msg, Keys.NextField):
		m.Form.NextField()
		return m, nil

	case key.Matches(msg, Keys.PrevField):
		m.Form.PrevField()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.Form, cmd = m.Form.Update(msg)
	return m, cmd
}

// submitForm validates the form and persists it, or shows inline errors with
// closest-match suggestions for the fields that have fixed vocabularies.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	form := m.Form.EntryForm()
	v := validate.ValidateEntry(form)
	if !v.Valid() {
		m.Form.SetErrors(v.Errors)
		m.Form.SetHints("genre", nil)
		m.Form.SetHints("language", nil)
		if _, bad := v.Errors["genre"]; bad {
			m.Form.SetHints("genre", search.SuggestGenres(form.Genre, 3))
		}
		if _, bad := v.Errors["language"]; bad {
			m.Form.SetHints("language", search.SuggestLanguages(m.entries, form.Language, 3))
		}
		return m, nil
	}

	m.Form.SetErrors(nil)
	entry := m.Form.Entry()
	if m.Form.Editing() {
		return m, UpdateEntryCmd(m.Svc, entry)
	}
	return m, CreateEntryCmd(m.Svc, entry)
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.filterText = ""
		m.FilterInput.Blur()
		m.State = StateBrowsing
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		m.FilterInput.Blur()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	if m.filterText != m.FilterInput.Value() {
		m.filterText = m.FilterInput.Value()
		m.rebuildRows()
	}
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.SearchInput.Blur()
		m.State = StateBrowsing
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if m.Browser.Selected() != nil {
			m.SearchInput.Blur()
			m.State = StateDetail
			m.refreshDetail()
		}
		return m, nil

	case msg.String() == "up":
		m.Browser.MoveUp()
		return m, nil
	case msg.String() == "down":
		m.Browser.MoveDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	m.rebuildRows()
	return m, cmd
}

// rebuildRows derives the visible rows from the snapshot and the current view
// state. The snapshot itself is never modified.
func (m *Model) rebuildRows() {
	if m.State == StateSearching {
		var rows []components.Row
		for _, r := range search.Titles(m.entries, m.SearchInput.Value()) {
			rows = append(rows, components.EntryRow(r.Entry))
		}
		m.Browser.SetRows(rows)
		return
	}

	view := catalog.FilterByContentType(m.entries, m.typeFilter)
	view = catalog.FilterByText(view, m.filterText)
	view = catalog.SortBy(view, m.sortField, m.sortOrder)

	var rows []components.Row
	if m.groupByLanguage {
		groups := catalog.GroupBy(view, func(e domain.Entry) string {
			if l := strings.TrimSpace(e.Language); l != "" {
				return l
			}
			return "Unknown"
		})
		byKey := make(map[string][]domain.Entry, len(groups))
		for _, g := range groups {
			byKey[g.Key] = g.Entries
		}
		for _, lc := range catalog.LanguagesByCount(view) {
			rows = append(rows, components.HeaderRow(fmt.Sprintf("%s (%d)", lc.Language, lc.Count)))
			for _, e := range byKey[lc.Language] {
				rows = append(rows, components.EntryRow(e))
			}
		}
		if unknown := byKey["Unknown"]; len(unknown) > 0 {
			rows = append(rows, components.HeaderRow(fmt.Sprintf("Unknown (%d)", len(unknown))))
			for _, e := range unknown {
				rows = append(rows, components.EntryRow(e))
			}
		}
	} else {
		for _, e := range view {
			rows = append(rows, components.EntryRow(e))
		}
	}

	m.Browser.SetRows(rows)
}

// refreshDetail re-enriches the selected entry for the detail view.
func (m *Model) refreshDetail() {
	sel := m.Browser.Selected()
	if sel == nil {
		m.Detail.SetEntry(nil)
		m.State = StateBrowsing
		return
	}
	d := catalog.EnrichForDisplay(*sel)
	m.Detail.SetEntry(&d)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.Browser.SetSize(m.Width, m.Height-ChromeHeight)
	m.Detail.SetSize(m.Width, m.Height-ChromeHeight)
	m.Form.SetSize(m.Width)
}

func nextSortField(current string) string {
	for i, f := range sortFields {
		if f == current {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[0]
}

func nextTypeFilter(current domain.ContentType) domain.ContentType {
	switch current {
	case "":
		return domain.ContentTypeMovie
	case domain.ContentTypeMovie:
		return domain.ContentTypeSeries
	case domain.ContentTypeSeries:
		return domain.ContentTypeAnime
	default:
		return ""
	}
}
