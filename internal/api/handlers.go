package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/validate"
	"github.com/julienschmidt/httprouter"
)

const maxBodyBytes = 10 << 20 // thumbnails/photos arrive inline as base64

func (s *Server) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "available"})
}

// listEntriesHandler returns the collection, optionally narrowed by exact
// language/genre query filters.
func (s *Server) listEntriesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Entries()
	if err != nil {
		s.serverErrorResponse(w, err)
		return
	}

	if language := r.URL.Query().Get("language"); language != "" {
		entries = catalog.FilterByLanguageExact(entries, language)
	}
	if genre := r.URL.Query().Get("genre"); genre != "" {
		var out []domain.Entry
		for _, e := range entries {
			if e.Genre == genre {
				out = append(out, e)
			}
		}
		entries = out
	}

	if entries == nil {
		entries = []domain.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createEntryHandler(w http.ResponseWriter, r *http.Request) {
	var entry domain.Entry
	if err := s.readJSON(w, r, &entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.ID = "" // the store assigns ids
	entry.Normalize()

	if v := validate.ValidateEntry(validate.FormFromEntry(entry)); !v.Valid() {
		s.validationFailedResponse(w, v.Errors)
		return
	}

	created, err := s.svc.Add(entry)
	if err != nil {
		s.serverErrorResponse(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateEntryHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if !json.Valid(patch) {
		s.errorResponse(w, http.StatusBadRequest, "body must be valid JSON")
		return
	}

	// Validate the post-merge record before committing anything.
	entries, err := s.svc.Entries()
	if err != nil {
		s.serverErrorResponse(w, err)
		return
	}
	current, err := catalog.FindByID(entries, id)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Movie not found")
		return
	}
	merged, err := current.Merge(patch)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if v := validate.ValidateEntry(validate.FormFromEntry(merged)); !v.Valid() {
		s.validationFailedResponse(w, v.Errors)
		return
	}

	updated, err := s.svc.Update(id, patch)
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		s.errorResponse(w, http.StatusNotFound, "Movie not found")
		return
	case err != nil:
		s.serverErrorResponse(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	removed, err := s.svc.Remove(id)
	if err != nil {
		s.serverErrorResponse(w, err)
		return
	}
	if !removed {
		s.errorResponse(w, http.StatusNotFound, "Movie not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted"})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("body contains badly-formed JSON")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON value")
	}
	return nil
}

func (s *Server) validationFailedResponse(w http.ResponseWriter, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, field+": "+fields[field])
	}
	s.writeJSONFields(w, http.StatusBadRequest, strings.Join(parts, "; "), fields)
}
