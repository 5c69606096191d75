package infermedica_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/tomblancdev/infermedica-go"
)

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// mustDecode decodes JSON from r.Body into v.
// Panics on error - safe in tests since errors indicate test bugs.
func mustDecode(r *http.Request, v interface{}) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		panic("failed to decode request: " + err.Error())
	}
}

// capturedRequest is what the mock server saw. Path is the escaped
// request path, as sent on the wire.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]interface{}
}

// newCaptureServer starts a server that answers every request with status
// and resp, and sends what it received on the returned channel.
func newCaptureServer(t *testing.T, status int, resp interface{}) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	reqs := make(chan capturedRequest, 16)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		}
		if r.Method == http.MethodPost {
			mustDecode(r, &got.Body)
		}
		reqs <- got

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		mustEncode(w, resp)
	}))
	t.Cleanup(server.Close)
	return server, reqs
}

// newTestClient creates a client pointed at server.
func newTestClient(server *httptest.Server, opts ...infermedica.Option) *infermedica.Client {
	return infermedica.NewClient("test-app-id", "test-app-key",
		append([]infermedica.Option{infermedica.WithBaseURL(server.URL)}, opts...)...)
}

// recordingTransport is a Transport that records requests and returns a
// canned result.
type recordingTransport struct {
	mu       sync.Mutex
	requests []*infermedica.Request
	result   json.RawMessage
	err      error
}

func (t *recordingTransport) Do(_ context.Context, req *infermedica.Request) (json.RawMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, req)
	if t.err != nil {
		return nil, t.err
	}
	if t.result == nil {
		return json.RawMessage(`{}`), nil
	}
	return t.result, nil
}

func (t *recordingTransport) calls() []*infermedica.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*infermedica.Request(nil), t.requests...)
}
