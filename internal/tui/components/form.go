package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/tui/styles"
	"github.com/cinelog/cinelog/internal/validate"
)

// Form field indices. Order matters: it is the tab order and render order.
const (
	fieldTitle = iota
	fieldType
	fieldLanguage
	fieldGenre
	fieldYear
	fieldRating
	fieldDescription
	fieldDirector
	fieldCast
	fieldRuntime
	fieldPlatforms
	fieldIMDB
	fieldRottenTomatoes
	fieldMetacritic
	fieldTrailer
	fieldRecommended
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Type (movie/series/anime)",
	"Language",
	"Genre",
	"Year",
	"Rating (0-5)",
	"Description",
	"Director",
	"Cast",
	"Runtime",
	"Streaming platforms (comma separated)",
	"IMDb rating (0-10)",
	"Rotten Tomatoes (0-100)",
	"Metacritic (0-100)",
	"Trailer URL",
	"Recommended (y/n)",
}

// validationKeys maps form fields to the keys ValidateEntry reports errors
// under. Fields without rules have no key.
var validationKeys = [fieldCount]string{
	fieldTitle:          "title",
	fieldType:           "contentType",
	fieldLanguage:       "language",
	fieldGenre:          "genre",
	fieldYear:           "year",
	fieldRating:         "rating",
	fieldIMDB:           "imdbRating",
	fieldRottenTomatoes: "rottenTomatoesRating",
	fieldMetacritic:     "metacriticRating",
}

// Form is the add/edit sheet: one text input per field, validated on submit
// with errors rendered inline under the offending field.
type Form struct {
	inputs [fieldCount]textinput.Model
	focus  int

	errors map[string]string
	hints  map[string][]string // "did you mean" suggestions per field

	entryID string // non-empty when editing
	extra   map[string]string
	base    domain.Entry // record being edited, zero for a new one

	width int
}

// NewForm creates a blank add form.
func NewForm() Form {
	f := Form{
		errors: map[string]string{},
		hints:  map[string][]string{},
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "required"
	f.inputs[fieldType].Placeholder = string(domain.ContentTypeMovie)
	f.inputs[fieldLanguage].Placeholder = "required"
	f.inputs[fieldGenre].Placeholder = "required"
	f.inputs[fieldDescription].CharLimit = 1024
	f.inputs[f.focus].Focus()
	return f
}

// Reset clears the form for a new entry.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldTitle
	f.inputs[f.focus].Focus()
	f.errors = map[string]string{}
	f.hints = map[string][]string{}
	f.entryID = ""
	f.base = domain.Entry{}
}

// SetEntry seeds the form from an existing record for editing.
func (f *Form) SetEntry(e domain.Entry) {
	f.Reset()
	f.entryID = e.ID
	f.base = e

	src := validate.FormFromEntry(e)
	f.inputs[fieldTitle].SetValue(src.Title)
	f.inputs[fieldType].SetValue(src.ContentType)
	f.inputs[fieldLanguage].SetValue(src.Language)
	f.inputs[fieldGenre].SetValue(src.Genre)
	f.inputs[fieldYear].SetValue(src.Year)
	f.inputs[fieldRating].SetValue(src.Rating)
	f.inputs[fieldDescription].SetValue(src.Description)
	f.inputs[fieldDirector].SetValue(src.Director)
	f.inputs[fieldCast].SetValue(src.Cast)
	f.inputs[fieldRuntime].SetValue(src.Runtime)
	f.inputs[fieldPlatforms].SetValue(strings.Join(src.StreamingPlatforms, ", "))
	f.inputs[fieldIMDB].SetValue(src.IMDBRating)
	f.inputs[fieldRottenTomatoes].SetValue(src.RottenTomatoes)
	f.inputs[fieldMetacritic].SetValue(src.Metacritic)
	f.inputs[fieldTrailer].SetValue(src.TrailerURL)
	if src.Recommended {
		f.inputs[fieldRecommended].SetValue("y")
	}
}

// Editing reports whether the form edits an existing record.
func (f *Form) Editing() bool {
	return f.entryID != ""
}

// EntryID returns the ID of the record under edit, empty for a new one.
func (f *Form) EntryID() string {
	return f.entryID
}

// SetSize sets the available width.
func (f *Form) SetSize(width int) {
	f.width = width
	for i := range f.inputs {
		w := width - 4
		if w > 60 {
			w = 60
		}
		if w > 0 {
			f.inputs[i].Width = w
		}
	}
}

// SetErrors replaces the inline validation errors.
func (f *Form) SetErrors(errors map[string]string) {
	if errors == nil {
		errors = map[string]string{}
	}
	f.errors = errors
}

// SetHints replaces the suggestion lines rendered under a field.
func (f *Form) SetHints(field string, suggestions []string) {
	if len(suggestions) == 0 {
		delete(f.hints, field)
		return
	}
	f.hints[field] = suggestions
}

// NextField moves focus forward, wrapping.
func (f *Form) NextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// PrevField moves focus backward, wrapping.
func (f *Form) PrevField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update forwards input to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// EntryForm collects the current input values into the raw form the
// validator understands.
func (f *Form) EntryForm() validate.EntryForm {
	contentType := strings.TrimSpace(f.inputs[fieldType].Value())
	if contentType == "" {
		contentType = string(domain.ContentTypeMovie)
	}

	var platforms []string
	for _, p := range strings.Split(f.inputs[fieldPlatforms].Value(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}

	rec := strings.ToLower(strings.TrimSpace(f.inputs[fieldRecommended].Value()))

	return validate.EntryForm{
		Title:              f.inputs[fieldTitle].Value(),
		ContentType:        contentType,
		Language:           f.inputs[fieldLanguage].Value(),
		Genre:              strings.TrimSpace(f.inputs[fieldGenre].Value()),
		Year:               strings.TrimSpace(f.inputs[fieldYear].Value()),
		Rating:             strings.TrimSpace(f.inputs[fieldRating].Value()),
		Description:        f.inputs[fieldDescription].Value(),
		Director:           f.inputs[fieldDirector].Value(),
		Cast:               f.inputs[fieldCast].Value(),
		Runtime:            strings.TrimSpace(f.inputs[fieldRuntime].Value()),
		StreamingPlatforms: platforms,
		IMDBRating:         strings.TrimSpace(f.inputs[fieldIMDB].Value()),
		RottenTomatoes:     strings.TrimSpace(f.inputs[fieldRottenTomatoes].Value()),
		Metacritic:         strings.TrimSpace(f.inputs[fieldMetacritic].Value()),
		TrailerURL:         strings.TrimSpace(f.inputs[fieldTrailer].Value()),
		Recommended:        rec == "y" || rec == "yes",
	}
}

// Entry converts the form to a domain entry, carrying over the identity and
// any fields the form does not surface when editing.
func (f *Form) Entry() domain.Entry {
	e := f.EntryForm().Entry()
	e.ID = f.entryID
	e.Budget = f.base.Budget
	e.BoxOffice = f.base.BoxOffice
	e.Awards = f.base.Awards
	e.Thumbnail = f.base.Thumbnail
	e.Photo = f.base.Photo
	e.Extra = f.base.Extra
	return e
}

// View renders the form with inline errors and suggestions.
func (f *Form) View() string {
	var sb strings.Builder
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			sb.WriteString(styles.AccentStyle.Render("▸ " + label))
		} else {
			sb.WriteString(styles.FieldLabelStyle.Render("  " + label))
		}
		sb.WriteByte('\n')
		sb.WriteString("  " + f.inputs[i].View())
		sb.WriteByte('\n')

		if key := validationKeys[i]; key != "" {
			if msg, ok := f.errors[key]; ok {
				sb.WriteString("  " + styles.FieldErrorStyle.Render(msg))
				sb.WriteByte('\n')
			}
			if hints, ok := f.hints[key]; ok {
				sb.WriteString("  " + styles.DimStyle.Render("did you mean: "+strings.Join(hints, ", ")))
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
