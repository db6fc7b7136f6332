// Package validate holds the field-level rules behind the create/edit form.
// A populated Validator maps field names to the first error found for each,
// empty map meaning the form may be submitted.
package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
)

// Validator collects field-keyed error messages.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no rule has failed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a message for a field, keeping the first one.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check records message for field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// EntryForm is the raw create/edit form state. Numeric fields arrive as text
// so partially-typed input can be validated on every change.
type EntryForm struct {
	Title              string
	Language           string
	Genre              string
	ContentType        string
	Year               string
	Description        string
	Rating             string
	Recommended        bool
	IMDBRating         string
	RottenTomatoes     string
	Metacritic         string
	StreamingPlatforms []string
	Director           string
	Cast               string
	Runtime            string
	Budget             string
	BoxOffice          string
	Awards             string
	TrailerURL         string
}

// MinYear is the oldest accepted release year.
const MinYear = 1800

// MaxYear returns the newest accepted release year (next year, for upcoming
// titles).
func MaxYear() int {
	return time.Now().Year() + 1
}

// ValidateEntry runs every field rule and returns the validator. Rules and
// messages match what the form shows inline.
func ValidateEntry(form EntryForm) *Validator {
	v := New()

	v.Check(strings.TrimSpace(form.Title) != "", "title", "Title is required")
	v.Check(strings.TrimSpace(form.Language) != "", "language", "Language is required")
	v.Check(form.Genre != "", "genre", "Genre is required")
	v.Check(form.ContentType != "", "contentType", "Type is required")

	if form.Year != "" {
		year, err := strconv.Atoi(strings.TrimSpace(form.Year))
		v.Check(err == nil && year >= MinYear && year <= MaxYear(), "year", "Enter a valid year")
	}
	if form.Rating != "" {
		r, err := strconv.ParseFloat(form.Rating, 64)
		v.Check(err == nil && r >= 0 && r <= 5, "rating", "Rating must be between 0 and 5")
	}
	if form.IMDBRating != "" {
		r, err := strconv.ParseFloat(form.IMDBRating, 64)
		v.Check(err == nil && r >= 0 && r <= 10, "imdbRating", "IMDb rating must be between 0 and 10")
	}
	if form.RottenTomatoes != "" {
		r, err := strconv.Atoi(form.RottenTomatoes)
		v.Check(err == nil && r >= 0 && r <= 100, "rottenTomatoesRating", "Rotten Tomatoes score must be between 0 and 100")
	}
	if form.Metacritic != "" {
		r, err := strconv.Atoi(form.Metacritic)
		v.Check(err == nil && r >= 0 && r <= 100, "metacriticRating", "Metacritic score must be between 0 and 100")
	}

	return v
}

// Entry converts a validated form into a domain entry. Call only after
// ValidateEntry reports valid; unparseable numeric fields become zero values.
func (f EntryForm) Entry() domain.Entry {
	e := domain.Entry{
		Title:              strings.TrimSpace(f.Title),
		Language:           strings.TrimSpace(f.Language),
		Genre:              f.Genre,
		ContentType:        domain.ContentType(f.ContentType),
		Description:        f.Description,
		Recommended:        f.Recommended,
		StreamingPlatforms: domain.DedupeStrings(f.StreamingPlatforms),
		Director:           f.Director,
		Cast:               f.Cast,
		Runtime:            f.Runtime,
		Budget:             f.Budget,
		BoxOffice:          f.BoxOffice,
		Awards:             f.Awards,
		TrailerURL:         f.TrailerURL,
	}

	if y, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
		e.Year = y
	}
	if r, err := strconv.ParseFloat(f.Rating, 64); err == nil {
		e.Rating = r
	}
	if r, err := strconv.ParseFloat(f.IMDBRating, 64); err == nil {
		e.IMDBRating = &r
	}
	if r, err := strconv.Atoi(f.RottenTomatoes); err == nil {
		e.RottenTomatoesRating = &r
	}
	if r, err := strconv.Atoi(f.Metacritic); err == nil {
		e.MetacriticRating = &r
	}

	return e
}

// FormFromEntry seeds the edit form from an existing record.
func FormFromEntry(e domain.Entry) EntryForm {
	f := EntryForm{
		Title:              e.Title,
		Language:           e.Language,
		Genre:              e.Genre,
		ContentType:        string(e.ContentType),
		Description:        e.Description,
		Recommended:        e.Recommended,
		StreamingPlatforms: append([]string(nil), e.StreamingPlatforms...),
		Director:           e.Director,
		Cast:               e.Cast,
		Runtime:            e.Runtime,
		Budget:             e.Budget,
		BoxOffice:          e.BoxOffice,
		Awards:             e.Awards,
		TrailerURL:         e.TrailerURL,
	}
	if e.Year != 0 {
		f.Year = strconv.Itoa(e.Year)
	}
	if e.Rating != 0 {
		f.Rating = strconv.FormatFloat(e.Rating, 'f', -1, 64)
	}
	if e.IMDBRating != nil {
		f.IMDBRating = strconv.FormatFloat(*e.IMDBRating, 'f', -1, 64)
	}
	if e.RottenTomatoesRating != nil {
		f.RottenTomatoes = strconv.Itoa(*e.RottenTomatoesRating)
	}
	if e.MetacriticRating != nil {
		f.Metacritic = strconv.Itoa(*e.MetacriticRating)
	}
	return f
}
