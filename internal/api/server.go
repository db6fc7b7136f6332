// Package api exposes the catalog over HTTP: the same list/create/update/
// delete operations the local store performs, served to remote clients. A
// cinelog configured with storage.backend = "api" talks to this surface
// through the REST store.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/julienschmidt/httprouter"
)

// Server carries the dependencies for the HTTP handlers.
type Server struct {
	svc    *catalog.Service
	logger *slog.Logger
}

// NewServer creates an API server over the given catalog service.
func NewServer(svc *catalog.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Routes builds the router. The movie routes mirror the wire format of the
// original Express backend so existing clients keep working.
func (s *Server) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(s.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(s.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", s.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/movies", s.listEntriesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", s.createEntryHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", s.updateEntryHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", s.deleteEntryHandler)

	return s.recoverPanic(router)
}

// recoverPanic turns handler panics into 500 responses instead of dropped
// connections.
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				s.serverErrorResponse(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
