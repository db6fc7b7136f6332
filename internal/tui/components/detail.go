package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/tui/styles"
)

// Detail renders one enriched entry: metadata, streaming availability and
// review scores, with the same fallback behavior the enrichment layer
// provides.
type Detail struct {
	entry *catalog.DisplayEntry

	width  int
	height int
}

// NewDetail creates an empty detail panel.
func NewDetail() Detail {
	return Detail{}
}

// SetEntry sets the enriched entry to display, nil to clear.
func (d *Detail) SetEntry(entry *catalog.DisplayEntry) {
	d.entry = entry
}

// SetSize sets the render area.
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the panel.
func (d *Detail) View() string {
	if d.entry == nil {
		return ""
	}
	e := d.entry

	var sb strings.Builder

	title := e.Title
	if e.Year != 0 {
		title = fmt.Sprintf("%s (%d)", e.Title, e.Year)
	}
	sb.WriteString(styles.TitleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(styles.SubtitleStyle.Render(e.Describe()))
	if e.Rating > 0 {
		sb.WriteString(styles.AccentStyle.Render(fmt.Sprintf("  ★ %.1f/5", e.Rating)))
	}
	if e.Recommended {
		sb.WriteString(styles.SuccessStyle.Render("  ✓ recommended"))
	}
	sb.WriteString("\n\n")

	if e.Description != "" {
		desc := e.Description
		if d.width > 8 {
			desc = lipgloss.NewStyle().Width(d.width - 8).Render(desc)
		}
		sb.WriteString(desc)
		sb.WriteString("\n\n")
	}

	writeField(&sb, "Director", e.Director)
	writeField(&sb, "Cast", e.Cast)
	writeField(&sb, "Runtime", e.Runtime)
	writeField(&sb, "Budget", e.Budget)
	writeField(&sb, "Box office", e.BoxOffice)
	writeField(&sb, "Awards", e.Awards)
	writeField(&sb, "Trailer", e.TrailerURL)

	sb.WriteString("\n")
	sb.WriteString(styles.AccentStyle.Render("Where to watch"))
	sb.WriteString("\n")
	for _, p := range e.Platforms {
		if p.Available {
			sb.WriteString(styles.AvailableStyle.Render(fmt.Sprintf("  %s %s ✓", p.Icon, p.Name)))
		} else {
			sb.WriteString(styles.UnavailableStyle.Render(fmt.Sprintf("  %s %s ✗", p.Icon, p.Name)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.AccentStyle.Render("Review scores"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  IMDb %.1f/10 · Rotten Tomatoes %d%% · Metacritic %d/100\n",
		e.Ratings.IMDB, e.Ratings.RottenTomatoes, e.Ratings.Metacritic))

	body := sb.String()
	if d.width > 4 {
		return styles.DetailPanelStyle.Width(d.width - 2).Render(body)
	}
	return styles.DetailPanelStyle.Render(body)
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(styles.FieldLabelStyle.Render(label+": ") + value + "\n")
}
