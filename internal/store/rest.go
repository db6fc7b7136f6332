package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
)

// REST implements domain.Store against a remote cinelogd instance. It is
// selected with storage.backend = "api" and leaves queries, detail resolution,
// and validation untouched.
type REST struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// OpenREST creates a REST-backed store rooted at baseURL.
func OpenREST(baseURL string, logger *slog.Logger) *REST {
	if logger == nil {
		logger = slog.Default()
	}
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (s *REST) Close() error { return nil }

func (s *REST) LoadAll() ([]domain.Entry, error) {
	resp, err := s.client.Get(s.baseURL + "/movies")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.apiError(resp)
	}
	var entries []domain.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return entries, nil
}

// SaveAll emulates the local store's full-rewrite semantics: the remote
// collection is cleared and recreated. Coarse, but SaveAll is only used for
// wholesale replacement (imports, reseeding).
func (s *REST) SaveAll(entries []domain.Entry) error {
	current, err := s.LoadAll()
	if err != nil {
		return err
	}
	for _, e := range current {
		if _, err := s.Remove(e.ID); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if _, err := s.Add(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *REST) Add(entry domain.Entry) (domain.Entry, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		return domain.Entry{}, err
	}
	resp, err := s.client.Post(s.baseURL+"/movies", "application/json", bytes.NewReader(body))
	if err != nil {
		return domain.Entry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return domain.Entry{}, s.apiError(resp)
	}
	var created domain.Entry
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.Entry{}, err
	}
	created.Normalize()
	return created, nil
}

func (s *REST) Update(id string, patch json.RawMessage) (domain.Entry, error) {
	req, err := http.NewRequest(http.MethodPut, s.entryURL(id), bytes.NewReader(patch))
	if err != nil {
		return domain.Entry{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Entry{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.Entry{}, domain.ErrEntryNotFound
	default:
		return domain.Entry{}, s.apiError(resp)
	}
	var updated domain.Entry
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return domain.Entry{}, err
	}
	updated.Normalize()
	return updated, nil
}

func (s *REST) Remove(id string) (bool, error) {
	req, err := http.NewRequest(http.MethodDelete, s.entryURL(id), nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		// 404 maps to the local no-op semantics for missing ids.
		return false, nil
	default:
		return false, s.apiError(resp)
	}
}

func (s *REST) entryURL(id string) string {
	return s.baseURL + "/movies/" + url.PathEscape(id)
}

// apiError decodes the server's {"error": "..."} failure shape.
func (s *REST) apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("api: %s (status %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
}
