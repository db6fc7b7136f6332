package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// errorResponse writes the {"error": "..."} failure shape shared with the
// original backend.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeJSONFields is errorResponse plus a per-field breakdown for validation
// failures.
func (s *Server) writeJSONFields(w http.ResponseWriter, status int, message string, fields map[string]string) {
	s.writeJSON(w, status, map[string]any{"error": message, "fields": fields})
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, err error) {
	s.logger.Error("internal server error", "error", err)
	s.errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
}

func (s *Server) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, http.StatusMethodNotAllowed, "the method is not supported for this resource")
}
