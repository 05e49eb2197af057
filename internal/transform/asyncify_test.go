package transform

import (
	"fmt"
	"strings"
	"testing"
)

const calendarFixture = `
package calendar

import (
	"context"
	"net/http"
)

type CalendarApp struct{}

func (a *CalendarApp) Get(url string, query map[string]string) (*http.Response, error) {
	return nil, nil
}

func (a *CalendarApp) HandleResponse(resp *http.Response) (map[string]any, error) {
	return nil, nil
}

func (a *CalendarApp) ListEvents(ctx context.Context, user string) (map[string]any, error) {
	resp, err := a.Get("/events", map[string]string{"user": user})
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

func (a *CalendarApp) refresh(ctx context.Context) (map[string]any, error) {
	resp, err := a.Get("/refresh", nil)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

func (a *CalendarApp) ListTools() []any {
	return []any{a.ListEvents}
}
`

func TestConvertCalls_RewritesToolMethod(t *testing.T) {
	out := convert(t, calendarFixture)

	if !strings.Contains(out, `resp, err := a.GetContext(ctx, "/events", map[string]string{"user": user})`) {
		t.Errorf("expected rewritten GetContext call with untouched arguments, got:\n%s", out)
	}
	if !strings.Contains(out, "return a.HandleResponseContext(ctx, resp)") {
		t.Errorf("expected rewritten HandleResponseContext return, got:\n%s", out)
	}
}

func TestConvertCalls_LeavesNonToolMethodAlone(t *testing.T) {
	out := convert(t, calendarFixture)

	// refresh is context-aware but not listed in ListTools.
	if !strings.Contains(out, `resp, err := a.Get("/refresh", nil)`) {
		t.Errorf("expected non-tool method body unmodified, got:\n%s", out)
	}
}

func TestConvertCalls_LeavesBlockingToolMethodAlone(t *testing.T) {
	out := convert(t, `
package demo

type FooApp struct{}

func (a *FooApp) Get(url string) (any, error) { return nil, nil }

func (a *FooApp) Fetch(url string) (any, error) {
	return a.Get(url)
}

func (a *FooApp) ListTools() []any {
	return []any{a.Fetch}
}
`)

	// Fetch is a tool but has no context.Context parameter yet.
	if !strings.Contains(out, "return a.Get(url)") {
		t.Errorf("expected blocking tool method unmodified, got:\n%s", out)
	}
	if strings.Contains(out, "GetContext") {
		t.Errorf("unexpected rewrite in blocking tool method:\n%s", out)
	}
}

func TestConvertCalls_VerbCoverage(t *testing.T) {
	verbs := []struct {
		verb string
		want string
	}{
		{"Get", "GetContext"},
		{"Post", "PostContext"},
		{"Put", "PutContext"},
		{"Delete", "DeleteContext"},
		{"Patch", "PatchContext"},
	}

	for _, tc := range verbs {
		t.Run(tc.verb, func(t *testing.T) {
			src := fmt.Sprintf(`
package demo

import "context"

type FooApp struct{}

func (a *FooApp) %s(url string) (any, error) { return nil, nil }

func (a *FooApp) Call(ctx context.Context, url string) (any, error) {
	return a.%s(url)
}

func (a *FooApp) ListTools() []any {
	return []any{a.Call}
}
`, tc.verb, tc.verb)

			out := convert(t, src)
			if !strings.Contains(out, fmt.Sprintf("a.%s(ctx, url)", tc.want)) {
				t.Errorf("expected %s rewritten to %s, got:\n%s", tc.verb, tc.want, out)
			}
		})
	}
}

func TestConvertCalls_NonVerbAttributeUntouched(t *testing.T) {
	out := convert(t, `
package demo

import "context"

type FooApp struct{}

func (a *FooApp) GetHeaders() map[string]string { return nil }
func (a *FooApp) Get(url string) (any, error)   { return nil, nil }

func (a *FooApp) Call(ctx context.Context, url string) (any, error) {
	_ = a.GetHeaders()
	return a.Get(url)
}

func (a *FooApp) ListTools() []any {
	return []any{a.Call}
}
`)

	if !strings.Contains(out, "_ = a.GetHeaders()") {
		t.Errorf("expected GetHeaders call unmodified, got:\n%s", out)
	}
	if strings.Contains(out, "GetHeadersContext") {
		t.Errorf("GetHeaders must not match the verb rewrite:\n%s", out)
	}
}

func TestConvertCalls_NestedCallExpression(t *testing.T) {
	out := convert(t, `
package demo

import "context"

type FooApp struct{}

func (a *FooApp) Get(url string) (any, error) { return nil, nil }

func wrap(v any, err error) any { return v }

func (a *FooApp) Call(ctx context.Context, url string) any {
	return wrap(a.Get(url))
}

func (a *FooApp) ListTools() []any {
	return []any{a.Call}
}
`)

	if !strings.Contains(out, "wrap(a.GetContext(ctx, url))") {
		t.Errorf("expected nested verb call rewritten bottom-up, got:\n%s", out)
	}
}

func TestConvertCalls_FuncLitBodySkipped(t *testing.T) {
	out := convert(t, `
package demo

import "context"

type FooApp struct{}

func (a *FooApp) Get(url string) (any, error) { return nil, nil }

func (a *FooApp) Call(ctx context.Context, url string) (any, error) {
	fetch := func() (any, error) {
		return a.Get(url)
	}
	return fetch()
}

func (a *FooApp) ListTools() []any {
	return []any{a.Call}
}
`)

	// A function literal is not a tool method; its body leaves the
	// rewrite scope.
	if strings.Contains(out, "GetContext") {
		t.Errorf("expected function literal body untouched, got:\n%s", out)
	}
}

func TestConvertCalls_ReturnRewriteOnlyForHandleResponse(t *testing.T) {
	out := convert(t, `
package demo

import "context"

type FooApp struct{}

func (a *FooApp) HandleResponse(v any) (any, error) { return nil, nil }
func (a *FooApp) decode(v any) (any, error)         { return nil, nil }

func (a *FooApp) Call(ctx context.Context, v any) (any, error) {
	if v == nil {
		return a.decode(v)
	}
	return a.HandleResponse(v)
}

func (a *FooApp) ListTools() []any {
	return []any{a.Call}
}
`)

	if !strings.Contains(out, "return a.HandleResponseContext(ctx, v)") {
		t.Errorf("expected HandleResponse return rewritten, got:\n%s", out)
	}
	if !strings.Contains(out, "return a.decode(v)") {
		t.Errorf("expected other returns unmodified, got:\n%s", out)
	}
}

func TestConvertCalls_Idempotent(t *testing.T) {
	first := convert(t, calendarFixture)
	second := convert(t, first)

	if first != second {
		t.Errorf("expected second run to be a no-op\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestConvertCalls_EndToEnd(t *testing.T) {
	// Two structurally identical context-aware methods; only the one
	// enumerated by ListTools is rewritten.
	out := convert(t, `
package demo

import (
	"context"
	"net/http"
)

type FooApp struct{}

func (a *FooApp) Get(url string) (*http.Response, error)                  { return nil, nil }
func (a *FooApp) HandleResponse(r *http.Response) (map[string]any, error) { return nil, nil }

func (a *FooApp) ListTools() []any {
	return []any{a.Bar}
}

func (a *FooApp) Bar(ctx context.Context) (map[string]any, error) {
	r, err := a.Get("/x")
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(r)
}

func (a *FooApp) Baz(ctx context.Context) (map[string]any, error) {
	r, err := a.Get("/y")
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(r)
}
`)

	if !strings.Contains(out, `r, err := a.GetContext(ctx, "/x")`) {
		t.Errorf("expected Bar rewritten, got:\n%s", out)
	}
	if !strings.Contains(out, `r, err := a.Get("/y")`) {
		t.Errorf("expected Baz untouched, got:\n%s", out)
	}
	if !strings.Contains(out, "return a.HandleResponseContext(ctx, r)") {
		t.Errorf("expected Bar's return rewritten, got:\n%s", out)
	}
}
