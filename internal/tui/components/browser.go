package components

import (
	"fmt"
	"strings"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/tui/styles"
)

// Row is one rendered line of the browse list: either a group header or an
// entry.
type Row struct {
	Header string
	Entry  *domain.Entry
}

// HeaderRow builds a group header row.
func HeaderRow(label string) Row {
	return Row{Header: label}
}

// EntryRow builds an entry row.
func EntryRow(e domain.Entry) Row {
	return Row{Entry: &e}
}

// Browser is the scrolling catalog list. The cursor only ever rests on entry
// rows; headers are skipped during navigation.
type Browser struct {
	rows   []Row
	cursor int
	offset int

	width  int
	height int
}

// NewBrowser creates an empty browser list.
func NewBrowser() Browser {
	return Browser{cursor: -1}
}

// SetSize sets the render area in cells.
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.scrollIntoView()
}

// SetRows replaces the visible rows, keeping the selection on the same entry
// ID when it survived the rebuild.
func (b *Browser) SetRows(rows []Row) {
	prevID := ""
	if sel := b.Selected(); sel != nil {
		prevID = sel.ID
	}
	b.rows = rows
	b.cursor = -1
	if prevID != "" {
		b.SelectID(prevID)
	}
	if b.cursor < 0 {
		b.cursor = b.nextEntryRow(-1)
	}
	b.scrollIntoView()
}

// Rows returns the current row count.
func (b *Browser) Rows() int {
	return len(b.rows)
}

// EntryCount returns how many rows are entries.
func (b *Browser) EntryCount() int {
	n := 0
	for _, r := range b.rows {
		if r.Entry != nil {
			n++
		}
	}
	return n
}

// Selected returns the entry under the cursor, nil when the list is empty.
func (b *Browser) Selected() *domain.Entry {
	if b.cursor < 0 || b.cursor >= len(b.rows) {
		return nil
	}
	return b.rows[b.cursor].Entry
}

// SelectID moves the cursor to the entry with the given ID if present.
func (b *Browser) SelectID(id string) {
	for i, r := range b.rows {
		if r.Entry != nil && r.Entry.ID == id {
			b.cursor = i
			b.scrollIntoView()
			return
		}
	}
}

// MoveUp moves the cursor to the previous entry row.
func (b *Browser) MoveUp() {
	if i := b.prevEntryRow(b.cursor); i >= 0 {
		b.cursor = i
		b.scrollIntoView()
	}
}

// MoveDown moves the cursor to the next entry row.
func (b *Browser) MoveDown() {
	if i := b.nextEntryRow(b.cursor); i >= 0 {
		b.cursor = i
		b.scrollIntoView()
	}
}

// MoveTop jumps to the first entry.
func (b *Browser) MoveTop() {
	if i := b.nextEntryRow(-1); i >= 0 {
		b.cursor = i
		b.scrollIntoView()
	}
}

// MoveBottom jumps to the last entry.
func (b *Browser) MoveBottom() {
	if i := b.prevEntryRow(len(b.rows)); i >= 0 {
		b.cursor = i
		b.scrollIntoView()
	}
}

func (b *Browser) nextEntryRow(from int) int {
	for i := from + 1; i < len(b.rows); i++ {
		if b.rows[i].Entry != nil {
			return i
		}
	}
	return -1
}

func (b *Browser) prevEntryRow(from int) int {
	for i := from - 1; i >= 0; i-- {
		if b.rows[i].Entry != nil {
			return i
		}
	}
	return -1
}

func (b *Browser) scrollIntoView() {
	if b.height <= 0 {
		return
	}
	if b.cursor >= 0 && b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+b.height {
		b.offset = b.cursor - b.height + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// View renders the visible window of rows.
func (b *Browser) View() string {
	if len(b.rows) == 0 {
		return styles.DimStyle.Render("  No titles. Press 'a' to add one.")
	}

	end := b.offset + b.height
	if b.height <= 0 || end > len(b.rows) {
		end = len(b.rows)
	}

	var sb strings.Builder
	for i := b.offset; i < end; i++ {
		sb.WriteString(b.renderRow(i))
		if i < end-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b *Browser) renderRow(i int) string {
	row := b.rows[i]
	if row.Entry == nil {
		return styles.GroupHeaderStyle.Render(row.Header)
	}

	e := row.Entry
	line := entryLine(*e, b.width)
	if i == b.cursor {
		return styles.SelectedItemStyle.Render("▸ " + line)
	}
	return styles.NormalItemStyle.Render("  " + line)
}

func entryLine(e domain.Entry, width int) string {
	title := e.Title
	if e.Year != 0 {
		title = fmt.Sprintf("%s (%d)", e.Title, e.Year)
	}

	meta := e.Genre
	if e.Language != "" {
		meta += " · " + e.Language
	}
	if e.ContentType != "" && e.ContentType != domain.ContentTypeMovie {
		meta += " · " + string(e.ContentType)
	}
	if e.Rating > 0 {
		meta += fmt.Sprintf(" · ★%.1f", e.Rating)
	}

	if width <= 0 {
		return title + "  " + meta
	}

	titleWidth := width * 2 / 5
	if titleWidth < 12 {
		titleWidth = 12
	}
	return styles.Pad(styles.Truncate(title, titleWidth), titleWidth) + "  " +
		styles.Truncate(meta, width-titleWidth-6)
}
