package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Host     string
	Header   http.Header
	Body     []byte
}

// DecodeJSON unmarshals the recorded body into target.
func (r RecordedRequest) DecodeJSON(t *testing.T, target any) {
	t.Helper()

	err := json.Unmarshal(r.Body, target)
	require.NoError(t, err, "Request body should be valid JSON")
}

// RecordingServer answers every request with a fixed status and body and keeps a copy
// of each request it receives.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	status   int
	body     string
}

func NewRecordingServer(t *testing.T, status int, body string) *RecordingServer {
	t.Helper()

	srv := &RecordingServer{
		mu:       sync.Mutex{},
		requests: nil,
		status:   status,
		body:     body,
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(srv.handle))
	t.Cleanup(srv.Close)

	return srv
}

func NewJSONServer(t *testing.T, body string) *RecordingServer {
	t.Helper()

	return NewRecordingServer(t, http.StatusOK, body)
}

func (s *RecordingServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Host:     r.Host,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.body)
}

func (s *RecordingServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

func (s *RecordingServer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func (s *RecordingServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.requests, "Server should have received a request")

	return s.requests[len(s.requests)-1]
}
