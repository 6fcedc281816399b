// Package mockmail implements a minimal mail-provider draft API for local
// harness runs and tests.
package mockmail

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Call records a request made to the mock service.
type Call struct {
	Method string
	Path   string
}

// DraftRecord is one draft the mock accepted.
type DraftRecord struct {
	ID      string
	To      string
	Subject string
	Body    string
}

// Server implements a minimal "provider-like" draft API surface.
type Server struct {
	mu     sync.Mutex
	calls  []Call
	drafts []DraftRecord

	expectedAuthorization string

	nextID int

	// failStatus, when non-zero, makes createDraft respond with that
	// status for failRemaining requests.
	failStatus    int
	failRemaining int
}

// New constructs a new mock server.
func New() *Server {
	return &Server{nextID: 1}
}

// RequireBearerToken enforces that requests include an Authorization header
// matching the token. If token is empty, authorization is not enforced.
func (s *Server) RequireBearerToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token = strings.TrimSpace(token)
	if token == "" {
		s.expectedAuthorization = ""
		return
	}
	s.expectedAuthorization = "Bearer " + token
}

// FailNext makes the next n createDraft requests respond with status.
func (s *Server) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failRemaining = n
}

// Handler returns an http.Handler that serves the mock API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/drafts", s.handleDrafts)
	return mux
}

// Calls returns a snapshot of calls made to the server.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Drafts returns a snapshot of drafts accepted by the server.
func (s *Server) Drafts() []DraftRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DraftRecord, len(s.drafts))
	copy(out, s.drafts)
	return out
}

func (s *Server) recordCall(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path})
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	expected := s.expectedAuthorization
	s.mu.Unlock()

	if expected == "" {
		return true
	}
	if r.Header.Get("Authorization") != expected {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

type draftRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleDrafts(w http.ResponseWriter, r *http.Request) {
	s.recordCall(r)
	if !s.authorize(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	if s.failRemaining > 0 {
		s.failRemaining--
		status := s.failStatus
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_code": "Mock:InjectedFailure",
			"message":    "injected failure",
			"request_id": "mock-req",
		})
		return
	}
	s.mu.Unlock()

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.To) == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_code": "Draft:MissingRecipient",
			"message":    "to is required",
		})
		return
	}

	s.mu.Lock()
	id := fmt.Sprintf("draft-%04d", s.nextID)
	s.nextID++
	s.drafts = append(s.drafts, DraftRecord{ID: id, To: req.To, Subject: req.Subject, Body: req.Body})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}
