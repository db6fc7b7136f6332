package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateForm:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderFormHeader(),
			m.Form.View(),
			m.renderFooter("tab next · S-tab prev · enter save · esc cancel"),
		)
	case StateDetail:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.Detail.View(),
			m.renderFooter("e edit · x delete · esc back"),
		)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.Browser.View(),
		m.renderFooter(""),
	)

	if m.State == StateConfirmDelete {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmDelete())
	}

	return view
}

// renderHeader renders the single title line with the active view state.
func (m Model) renderHeader() string {
	parts := []string{styles.TitleStyle.Render("cinelog")}
	parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("%d titles", m.Browser.EntryCount())))

	arrow := "↑"
	if m.sortOrder == catalog.SortDesc {
		arrow = "↓"
	}
	parts = append(parts, styles.SubtitleStyle.Render("sort: "+m.sortField+" "+arrow))

	if m.typeFilter != "" {
		parts = append(parts, styles.AccentStyle.Render("type: "+string(m.typeFilter)))
	}
	if m.groupByLanguage {
		parts = append(parts, styles.AccentStyle.Render("grouped by language"))
	}
	if m.State == StateSearching {
		parts = append(parts, styles.FilterPromptStyle.Render(m.SearchInput.View()))
	} else if m.filterText != "" || m.State == StateFiltering {
		parts = append(parts, styles.FilterPromptStyle.Render(m.FilterInput.View()))
	}

	return strings.Join(parts, styles.DimStyle.Render("  │  "))
}

func (m Model) renderFormHeader() string {
	if m.Form.Editing() {
		return styles.TitleStyle.Render("Edit title")
	}
	return styles.TitleStyle.Render("Add title")
}

// renderFooter renders the status line, or key hints when idle.
func (m Model) renderFooter(hints string) string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	if hints == "" {
		hints = "j/k move · enter open · a add · e edit · x delete · / filter · f search · ? help · q quit"
	}
	return styles.HelpDescStyle.Render(hints)
}

func (m Model) renderConfirmDelete() string {
	title := ""
	if m.deleteTarget != nil {
		title = m.deleteTarget.Title
	}
	body := styles.ModalTitleStyle.Render("Delete entry") + "\n" +
		fmt.Sprintf("Delete %q from the catalog?\n\n", title) +
		styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" delete   ") +
		styles.HelpKeyStyle.Render("n/esc") + styles.HelpDescStyle.Render(" cancel")
	return styles.ModalStyle.Render(body)
}

// renderHelp renders the full-screen key reference.
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"j/k, ↓/↑", "move selection"},
		{"g / G", "jump to top / bottom"},
		{"enter", "open detail view"},
		{"a", "add a title"},
		{"e", "edit selected title"},
		{"x", "delete selected title"},
		{"/", "filter by title or genre"},
		{"f", "fuzzy title search"},
		{"s", "cycle sort field (title/year/language/genre)"},
		{"o", "toggle sort order"},
		{"t", "cycle type filter (all/movie/series/anime)"},
		{"L", "group by language"},
		{"r", "reload from storage"},
		{"esc", "clear filter / go back"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(styles.ModalTitleStyle.Render("cinelog keys"))
	sb.WriteString("\n\n")
	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(styles.HelpKeyStyle.Render(styles.Pad(r[0], 12)))
		sb.WriteString(styles.HelpDescStyle.Render(r[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.DimStyle.Render("  press esc to close"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(sb.String()))
}
