// Package testutil provides test helpers for go-flexauth packages.
//
// It stubs authorization-server token endpoints without real sockets: an
// in-memory RoundTripper records every request, including the decoded form
// body, and serves canned responses. Recording is mutex-guarded so the
// helpers stay truthful under the concurrency tests.
package testutil

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TokenServer simulates an authorization-server token endpoint backed by an
// in-memory RoundTripper. Wire the Client into the code under test; every
// request it sends is recorded before the handler runs.
type TokenServer struct {
	URL    string
	Client *http.Client

	mu       sync.Mutex
	requests []*http.Request
	forms    []url.Values
}

// NewTokenServer builds a stub token endpoint. If handler is nil, it returns
// a default successful token response with the canonical field names.
func NewTokenServer(tb testing.TB, handler RoundTripFunc) *TokenServer {
	tb.Helper()

	if handler == nil {
		handler = StaticJSONResponse(`{
			"access_token": "mock-access-token",
			"token_type": "Bearer",
			"expires_in": 3600
		}`)
	}

	server := &TokenServer{
		URL: "https://mock-auth.example.com/token",
	}

	rt := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		server.record(req)
		return handler(req)
	})

	server.Client = &http.Client{Transport: rt}

	return server
}

func (s *TokenServer) record(req *http.Request) {
	var form url.Values
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err == nil {
			req.Body = io.NopCloser(strings.NewReader(string(body)))
			form, _ = url.ParseQuery(string(body))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	s.forms = append(s.forms, form)
}

// RequestCount returns how many requests reached the endpoint.
func (s *TokenServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a snapshot of the recorded requests.
func (s *TokenServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Forms returns the decoded form body of each recorded request, in order.
func (s *TokenServer) Forms() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.forms))
	copy(out, s.forms)
	return out
}

// StaticJSONResponse returns a RoundTripper that always responds 200 with the
// provided JSON body.
func StaticJSONResponse(body string) RoundTripFunc {
	return JSONResponse(http.StatusOK, body)
}

// JSONResponse returns a RoundTripper that always responds with the provided
// status code and JSON body.
func JSONResponse(status int, body string) RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: status,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}
