// Package graphtest provides a mock Graph API server for tests. It simulates
// the token endpoint, page envelopes, vendor error envelopes, and throttling
// headers so client and query-builder behavior can be exercised offline.
package graphtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Response defines a canned response for one path.
type Response struct {
	// StatusCode is the HTTP status to return (default 200)
	StatusCode int

	// Body is marshaled to JSON (string bodies are written verbatim)
	Body any

	// Headers are extra response headers (e.g. Retry-After)
	Headers map[string]string
}

// Server is a mock Graph API server. The token endpoint at /token always
// issues a static bearer token; all other paths serve configured responses.
type Server struct {
	server    *httptest.Server
	mu        sync.Mutex
	responses map[string]Response
	requests  map[string]int
	lastQuery map[string]string
	lastHdrs  map[string]http.Header
}

// NewServer creates and starts a mock Graph server.
func NewServer() *Server {
	s := &Server{
		responses: make(map[string]Response),
		requests:  make(map[string]int),
		lastQuery: make(map[string]string),
		lastHdrs:  make(map[string]http.Header),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// TokenURL returns the mock token endpoint.
func (s *Server) TokenURL() string {
	return s.server.URL + "/token"
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// SetResponse configures the response for a path (e.g. "/users").
func (s *Server) SetResponse(path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = resp
}

// SetPage configures a 200 page-envelope response with the given items.
func (s *Server) SetPage(path string, items ...any) {
	s.SetResponse(path, Response{StatusCode: http.StatusOK, Body: map[string]any{"value": items}})
}

// SetError configures a vendor error envelope response.
func (s *Server) SetError(path string, status int, code, message string) {
	s.SetResponse(path, Response{
		StatusCode: status,
		Body: map[string]any{
			"error": map[string]any{"code": code, "message": message},
		},
	})
}

// RequestCount returns how many requests hit the given path.
func (s *Server) RequestCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// LastQuery returns the raw query string of the most recent request to path.
func (s *Server) LastQuery(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery[path]
}

// LastHeader returns a header value from the most recent request to path.
func (s *Server) LastHeader(path, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.lastHdrs[path]; ok {
		return h.Get(key)
	}
	return ""
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/token" {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
		return
	}

	s.mu.Lock()
	s.requests[r.URL.Path]++
	s.lastQuery[r.URL.Path] = r.URL.RawQuery
	s.lastHdrs[r.URL.Path] = r.Header.Clone()
	resp, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"Request_ResourceNotFound","message":"resource not found"}}`))
		return
	}

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	switch body := resp.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(body))
	default:
		_ = json.NewEncoder(w).Encode(body)
	}
}
