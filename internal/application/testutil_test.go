package application

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// mockResponse describes a canned HTTP response.
type mockResponse struct {
	statusCode int
	body       string
	err        error
}

// mockRoundTripper implements http.RoundTripper for tests, keyed by
// request path.
type mockRoundTripper struct {
	mu        sync.Mutex
	responses map[string]*mockResponse
	requests  []*http.Request
}

func newMockRoundTripper() *mockRoundTripper {
	return &mockRoundTripper{responses: make(map[string]*mockResponse)}
}

func (m *mockRoundTripper) respond(path string, statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = &mockResponse{statusCode: statusCode, body: body}
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	resp, ok := m.responses[req.URL.Path]
	m.mu.Unlock()

	if !ok {
		resp = &mockResponse{statusCode: http.StatusOK, body: "{}"}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &http.Response{
		StatusCode: resp.statusCode,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (m *mockRoundTripper) lastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

func newTestApp(rt *mockRoundTripper, integration *Integration) *APIApplication {
	return New("test", "https://api.example.com", integration,
		WithHTTPClient(&http.Client{Transport: rt}))
}
