// Package testfixture holds a small introspection result shared by tests.
package testfixture

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/stretchr/testify/require"
)

// Introspection is a full {"data": {"__schema": ...}} response.
//
//go:embed introspection.json
var Introspection []byte

// Schema decodes Introspection.
func Schema(t *testing.T) *introspection.Schema {
	t.Helper()
	schema, err := introspection.Decode(Introspection)
	require.NoError(t, err)
	return schema
}

// Request is what a Server saw for one request.
type Request struct {
	Method      string
	ContentType string
	Header      http.Header
	Query       string
}

// Server is an httptest server answering every POST with a fixed body.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// NewServer starts a server that replies with body and status. The server
// is closed when the test ends.
func NewServer(t *testing.T, status int, body []byte) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      r.Method,
			ContentType: r.Header.Get("Content-Type"),
			Header:      r.Header.Clone(),
			Query:       payload.Query,
		})
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

// NewIntrospectionServer serves Introspection with 200 OK.
func NewIntrospectionServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(t, http.StatusOK, Introspection)
}
