// Package application provides the shared request dispatch layer that
// generated application packages call into: blocking verb primitives,
// their context-aware counterparts, and uniform response handling.
package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// APIApplication wraps one third-party REST API. Generated application
// types embed it and call its verb primitives from their per-endpoint
// methods.
type APIApplication struct {
	Name    string
	BaseURL string

	client      *http.Client
	limiter     *rate.Limiter
	integration *Integration
	logger      *log.Logger
}

// Option customizes an APIApplication.
type Option func(*APIApplication)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *APIApplication) { a.client = client }
}

// WithRateLimit bounds outgoing requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(a *APIApplication) { a.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger replaces the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *APIApplication) { a.logger = logger }
}

// New creates the dispatch layer for one application. The integration
// may be nil for APIs that require no authentication.
func New(name, baseURL string, integration *Integration, opts ...Option) *APIApplication {
	a := &APIApplication{
		Name:        name,
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		client:      &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(10), 5),
		integration: integration,
		logger:      log.Default().WithPrefix(name),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Get issues a blocking GET request.
func (a *APIApplication) Get(rawURL string, query url.Values) (*http.Response, error) {
	return a.GetContext(context.Background(), rawURL, query)
}

// GetContext issues a GET request bound to ctx.
func (a *APIApplication) GetContext(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, rawURL, query, nil)
}

// Post issues a blocking POST request with a JSON body.
func (a *APIApplication) Post(rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.PostContext(context.Background(), rawURL, query, body)
}

// PostContext issues a POST request bound to ctx.
func (a *APIApplication) PostContext(ctx context.Context, rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.do(ctx, http.MethodPost, rawURL, query, body)
}

// Put issues a blocking PUT request with a JSON body.
func (a *APIApplication) Put(rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.PutContext(context.Background(), rawURL, query, body)
}

// PutContext issues a PUT request bound to ctx.
func (a *APIApplication) PutContext(ctx context.Context, rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.do(ctx, http.MethodPut, rawURL, query, body)
}

// Patch issues a blocking PATCH request with a JSON body.
func (a *APIApplication) Patch(rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.PatchContext(context.Background(), rawURL, query, body)
}

// PatchContext issues a PATCH request bound to ctx.
func (a *APIApplication) PatchContext(ctx context.Context, rawURL string, query url.Values, body any) (*http.Response, error) {
	return a.do(ctx, http.MethodPatch, rawURL, query, body)
}

// Delete issues a blocking DELETE request.
func (a *APIApplication) Delete(rawURL string, query url.Values) (*http.Response, error) {
	return a.DeleteContext(context.Background(), rawURL, query)
}

// DeleteContext issues a DELETE request bound to ctx.
func (a *APIApplication) DeleteContext(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	return a.do(ctx, http.MethodDelete, rawURL, query, nil)
}

func (a *APIApplication) do(ctx context.Context, method, rawURL string, query url.Values, body any) (*http.Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.integration != nil {
		a.integration.Apply(req)
	}

	a.logger.Debug("request", "method", method, "url", rawURL)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return resp, nil
}

// HandleResponse consumes a response body, decodes it as a JSON object,
// and returns an *APIError for non-2xx statuses.
func (a *APIApplication) HandleResponse(resp *http.Response) (map[string]any, error) {
	return a.HandleResponseContext(context.Background(), resp)
}

// HandleResponseContext is the context-aware counterpart of
// HandleResponse; it aborts before reading the body once ctx is done.
func (a *APIApplication) HandleResponseContext(ctx context.Context, resp *http.Response) (map[string]any, error) {
	defer resp.Body.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status: resp.StatusCode,
			URL:    resp.Request.URL.String(),
			Body:   truncate(string(data), 512),
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", resp.Request.URL, err)
	}
	return out, nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.Status, e.Body)
}

// Query builds url.Values from name/value pairs, dropping empty values.
// Generated methods use it to filter unset optional parameters.
func Query(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	return q
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
