// Package apimock provides a scriptable fake deployment API server for
// exercising the HTTP client in tests. It serves the same wire format as the
// real deployment API: paginated environment listings and per-deployment
// deletion, with configurable authentication and failure injection.
package apimock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"mercator-hq/saturn/pkg/deployments"
)

// RequestRecord captures a single request received by the mock server.
type RequestRecord struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	UserAgent     string
}

// Server is a fake deployment API backed by httptest.
type Server struct {
	server *httptest.Server

	mu           sync.Mutex
	environments map[string][]deployments.Deployment
	deleteStatus map[int64]int
	listStatus   int
	authToken    string
	requests     []RequestRecord
}

// NewServer creates a started mock deployment API server.
// Callers must Close it when done.
func NewServer() *Server {
	s := &Server{
		environments: make(map[string][]deployments.Deployment),
		deleteStatus: make(map[int64]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the mock server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts down the mock server.
func (s *Server) Close() {
	s.server.Close()
}

// Seed adds deployments to an environment.
func (s *Server) Seed(environment string, deps ...deployments.Deployment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environments[environment] = append(s.environments[environment], deps...)
}

// RequireToken makes the server reject requests whose Authorization header
// is not "Bearer <token>".
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = token
}

// FailListing makes all listing requests return the given HTTP status.
func (s *Server) FailListing(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
}

// FailDeletion makes deletion of the given deployment return the given
// HTTP status instead of succeeding.
func (s *Server) FailDeletion(id int64, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteStatus[id] = status
}

// Deployments returns the deployments currently held for an environment
// (for testing).
func (s *Server) Deployments(environment string) []deployments.Deployment {
	s.mu.Lock()
	defer s.mu.Unlock()
	deps := s.environments[environment]
	out := make([]deployments.Deployment, len(deps))
	copy(out, deps)
	return out
}

// Requests returns all requests received so far (for testing).
func (s *Server) Requests() []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RequestRecord, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received (for testing).
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// handler dispatches requests to the listing and deletion endpoints.
func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, RequestRecord{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		UserAgent:     r.Header.Get("User-Agent"),
	})
	authToken := s.authToken
	s.mu.Unlock()

	if authToken != "" && r.Header.Get("Authorization") != "Bearer "+authToken {
		writeError(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/environments/") && strings.HasSuffix(r.URL.Path, "/deployments"):
		environment := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/environments/"), "/deployments")
		s.handleList(w, r, environment)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/v1/deployments/"):
		idStr := strings.TrimPrefix(r.URL.Path, "/v1/deployments/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid deployment id %q", idStr))
			return
		}
		s.handleDelete(w, id)

	default:
		writeError(w, http.StatusNotFound, "no such endpoint")
	}
}

// handleList serves one page of an environment listing. Page tokens are
// plain offsets into the seeded slice.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request, environment string) {
	s.mu.Lock()
	listStatus := s.listStatus
	deps := s.environments[environment]
	s.mu.Unlock()

	if listStatus != 0 {
		writeError(w, listStatus, "listing unavailable")
		return
	}

	offset := 0
	if token := r.URL.Query().Get("page_token"); token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid page token %q", token))
			return
		}
		offset = n
	}
	if offset > len(deps) {
		offset = len(deps)
	}

	pageSize := len(deps) - offset
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < pageSize {
			pageSize = n
		}
	}

	page := deps[offset : offset+pageSize]
	next := ""
	if offset+pageSize < len(deps) {
		next = strconv.Itoa(offset + pageSize)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"deployments":     page,
		"next_page_token": next,
	})
}

// handleDelete removes a deployment, honoring scripted failures.
func (s *Server) handleDelete(w http.ResponseWriter, id int64) {
	s.mu.Lock()
	status, scripted := s.deleteStatus[id]
	found := false
	if !scripted {
	search:
		for environment, deps := range s.environments {
			for i, d := range deps {
				if d.ID == id {
					s.environments[environment] = append(deps[:i:i], deps[i+1:]...)
					found = true
					break search
				}
			}
		}
	}
	s.mu.Unlock()

	switch {
	case scripted:
		writeError(w, status, fmt.Sprintf("deletion of deployment %d rejected", id))
	case found:
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("deployment %d not found", id))
	}
}

// writeError writes the deployment API's error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
		},
	})
}
