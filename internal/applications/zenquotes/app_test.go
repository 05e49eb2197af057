package zenquotes

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/agentware/appforge/internal/application"
)

type staticTransport struct {
	body string
}

func (rt *staticTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(rt.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func TestGetRandomQuote(t *testing.T) {
	app := New(application.WithHTTPClient(&http.Client{
		Transport: &staticTransport{body: `[{"q": "Walk on.", "a": "Thich Nhat Hanh"}]`},
	}))

	got, err := app.GetRandomQuote(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got["quote"] != "Walk on." {
		t.Errorf("expected quote, got %v", got["quote"])
	}
	if got["author"] != "Thich Nhat Hanh" {
		t.Errorf("expected author, got %v", got["author"])
	}
}

func TestGetRandomQuote_EmptyResponse(t *testing.T) {
	app := New(application.WithHTTPClient(&http.Client{
		Transport: &staticTransport{body: `[]`},
	}))

	if _, err := app.GetRandomQuote(context.Background()); err == nil {
		t.Error("expected error for empty quote list")
	}
}
