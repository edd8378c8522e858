package lib

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

type cannedResponse struct {
	status int
	body   string
}

// fakeHubSpot serves canned responses per path, in order, and records every request.
type fakeHubSpot struct {
	mu        sync.Mutex
	responses map[string][]cannedResponse
	requests  []recordedRequest
	server    *httptest.Server
}

func newFakeHubSpot(t *testing.T) *fakeHubSpot {
	f := &fakeHubSpot{responses: map[string][]cannedResponse{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeHubSpot) on(path string, status int, body string) *fakeHubSpot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = append(f.responses[path], cannedResponse{status: status, body: body})
	return f
}

func (f *fakeHubSpot) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
		Header: r.Header.Clone(),
	})

	queue := f.responses[r.URL.Path]
	if len(queue) == 0 {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}
	resp := queue[0]
	if len(queue) > 1 {
		f.responses[r.URL.Path] = queue[1:]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	io.WriteString(w, resp.body)
}

func (f *fakeHubSpot) requestsTo(path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []recordedRequest
	for _, r := range f.requests {
		if r.Path == path {
			matched = append(matched, r)
		}
	}
	return matched
}

func (f *fakeHubSpot) client() *Client {
	return NewClient(ClientConfig{
		BaseURL:     f.server.URL,
		AccessToken: "pat-test-token",
		RateLimit:   1000,
		RateBurst:   100,
	})
}

type testLogger struct {
	infos  []string
	errors []string
}

func (tl *testLogger) Info(message string) {
	tl.infos = append(tl.infos, message)
}

func (tl *testLogger) Error(message string) {
	tl.errors = append(tl.errors, message)
}
