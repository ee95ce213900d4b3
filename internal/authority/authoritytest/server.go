// Package authoritytest provides an in-process stub of the authority REST API for tests.
package authoritytest

import (
	"encoding/json"
	"github.com/gorilla/mux"
	"lobby-service/internal/authority"
	"lobby-service/internal/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const BasePath = "/api/v1"

type Server struct {
	*httptest.Server
	Router *mux.Router

	mu       sync.Mutex
	hits     map[string]int
	lastAuth string
	bodies   map[string][]byte
}

// NewServer starts a stub authority that is closed when the test finishes.
func NewServer(t testing.TB) *Server {
	s := &Server{
		hits:   make(map[string]int),
		bodies: make(map[string][]byte),
	}

	root := mux.NewRouter()
	s.Router = root.PathPrefix(BasePath).Subrouter()
	s.Router.Use(s.record)

	s.Server = httptest.NewServer(root)
	t.Cleanup(s.Close)
	return s
}

// record counts requests per "METHOD /template" and remembers the last request body.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		key := r.Method + " " + strings.TrimPrefix(path, BasePath)

		var body []byte
		if r.Body != nil {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				body = raw
			}
		}

		s.mu.Lock()
		s.hits[key]++
		s.lastAuth = r.Header.Get("Authorization")
		if body != nil {
			s.bodies[key] = body
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// Handle registers a handler for a path relative to BasePath.
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.Router.HandleFunc(path, h).Methods(method)
}

// JSON registers a handler that always answers with status and body encoded as JSON.
func (s *Server) JSON(method, path string, status int, body any) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// Hits returns how many requests matched "METHOD /template", e.g. "GET /profiles/uuid/{uuid}".
func (s *Server) Hits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

// LastBody decodes the last request body received for key into v.
func (s *Server) LastBody(key string, v any) error {
	s.mu.Lock()
	raw := s.bodies[key]
	s.mu.Unlock()
	return json.Unmarshal(raw, v)
}

func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) Config() config.AuthorityConfig {
	return config.AuthorityConfig{
		BaseURL: s.URL + BasePath,
		Timeout: 2 * time.Second,
	}
}

func (s *Server) Client() *authority.Client {
	return authority.NewClient(s.Config())
}
