// Package zenquotes wraps the Zen Quotes API. Its methods are in
// context-aware form, the shape the conversion pipeline produces.
package zenquotes

import (
	"context"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/agentware/appforge/internal/application"
)

// ZenquotesApp fetches inspirational quotes. The API needs no
// authentication.
type ZenquotesApp struct {
	*application.APIApplication
}

// New creates a Zen Quotes application.
func New(opts ...application.Option) *ZenquotesApp {
	return &ZenquotesApp{application.New("zenquotes", "https://zenquotes.io/api", nil, opts...)}
}

// GetRandomQuote fetches a random quote and returns it with its author.
// The API responds with a JSON array, so the fields are picked out of
// the raw body instead of going through HandleResponse.
func (a *ZenquotesApp) GetRandomQuote(ctx context.Context) (map[string]any, error) {
	resp, err := a.GetContext(ctx, a.BaseURL+"/random", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	quote := gjson.GetBytes(data, "0.q")
	author := gjson.GetBytes(data, "0.a")
	if !quote.Exists() || !author.Exists() {
		return nil, fmt.Errorf("response contains no quotes")
	}
	return map[string]any{
		"quote":  quote.String(),
		"author": author.String(),
	}, nil
}

// ListTools enumerates the methods exposed as agent tools.
func (a *ZenquotesApp) ListTools() []any {
	return []any{a.GetRandomQuote}
}
