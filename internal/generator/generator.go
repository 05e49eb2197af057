// Package generator emits blocking-style application packages from
// OpenAPI 3.x documents: one exported method per operation, a ListTools
// enumeration, and the usual URL/query plumbing against the base
// application layer.
package generator

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// App is the template model for one generated application package.
type App struct {
	Slug    string
	Package string
	BaseURL string
	Title   string
	Methods []Method
}

// Method is the template model for one generated endpoint method.
type Method struct {
	Name        string
	Doc         string
	Verb        string
	PathFormat  string
	PathArgs    []Param
	QueryParams []Param
	HasBody     bool
}

// Param is a single path or query parameter.
type Param struct {
	Name   string
	GoName string
}

// NeedsFmt reports whether the generated package uses fmt: only the
// required-parameter checks and Sprintf URL construction do, and both
// exist only for methods with path parameters. Flat-path packages must
// not import fmt or they fail to compile.
func (a *App) NeedsFmt() bool {
	for _, m := range a.Methods {
		if len(m.PathArgs) > 0 {
			return true
		}
	}
	return false
}

// Params returns path and query parameters in declaration order.
func (m Method) Params() []Param {
	params := make([]Param, 0, len(m.PathArgs)+len(m.QueryParams))
	params = append(params, m.PathArgs...)
	params = append(params, m.QueryParams...)
	return params
}

// Parse builds the template model from an OpenAPI document.
func Parse(spec []byte, slug string) (*App, error) {
	doc, err := libopenapi.NewDocument(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	model, errs := doc.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build OpenAPI model: %w", errs)
	}

	app := &App{
		Slug:    slug,
		Package: packageName(slug),
		Title:   titleOf(&model.Model, slug),
	}
	if len(model.Model.Servers) > 0 {
		app.BaseURL = strings.TrimSuffix(model.Model.Servers[0].URL, "/")
	}

	if model.Model.Paths == nil {
		return app, nil
	}
	for pair := model.Model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()
		operations := []struct {
			verb string
			op   *v3.Operation
		}{
			{"Get", item.Get},
			{"Post", item.Post},
			{"Put", item.Put},
			{"Delete", item.Delete},
			{"Patch", item.Patch},
		}
		for _, entry := range operations {
			if entry.op == nil {
				continue
			}
			app.Methods = append(app.Methods, buildMethod(entry.verb, path, entry.op))
		}
	}
	if len(app.Methods) == 0 {
		return nil, fmt.Errorf("document defines no operations")
	}
	return app, nil
}

func buildMethod(verb, path string, op *v3.Operation) Method {
	m := Method{
		Name:    methodName(verb, path, op),
		Doc:     docLine(op),
		Verb:    verb,
		HasBody: op.RequestBody != nil,
	}
	var args []string
	m.PathFormat, args = splitPath(path)
	for _, arg := range args {
		m.PathArgs = append(m.PathArgs, Param{Name: arg, GoName: goName(arg, false)})
	}
	if m.Doc == "" {
		m.Doc = fmt.Sprintf("calls %s %s.", strings.ToUpper(verb), path)
	}
	for _, param := range op.Parameters {
		if param.In != "query" {
			continue
		}
		m.QueryParams = append(m.QueryParams, Param{
			Name:   param.Name,
			GoName: goName(param.Name, false),
		})
	}
	return m
}

// splitPath turns "/events/{uuid}/invitees" into a Sprintf format with
// one %s per path parameter plus the parameter names in order.
func splitPath(path string) (string, []string) {
	var args []string
	var b strings.Builder
	rest := path
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		close := strings.Index(rest[open:], "}")
		if close < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		b.WriteString("%s")
		args = append(args, rest[open+1:open+close])
		rest = rest[open+close+1:]
	}
	return b.String(), args
}

func methodName(verb, path string, op *v3.Operation) string {
	if op.OperationId != "" {
		return goName(op.OperationId, true)
	}
	// No operationId: derive a name from the verb and path segments.
	name := strings.ToLower(verb)
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg != "" {
			name += "_" + seg
		}
	}
	return goName(name, true)
}

func docLine(op *v3.Operation) string {
	doc := op.Summary
	if doc == "" {
		doc = op.Description
	}
	if i := strings.IndexAny(doc, "\r\n"); i >= 0 {
		doc = doc[:i]
	}
	return strings.TrimSpace(doc)
}

func titleOf(doc *v3.Document, slug string) string {
	if doc.Info != nil && doc.Info.Title != "" {
		return doc.Info.Title
	}
	return slug
}

// goName converts snake_case, kebab-case, or camelCase identifiers to a
// Go name. Exported names start upper-case.
func goName(s string, exported bool) string {
	var b strings.Builder
	upper := exported
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			upper = true
		case upper:
			b.WriteRune(toUpper(r))
			upper = false
		case i == 0 && !exported:
			b.WriteRune(toLower(r))
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "param"
	}
	return name
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

func packageName(slug string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return toLower(r)
		default:
			return -1
		}
	}, slug)
}

// Render executes the package template and gofmts the result. The
// output is re-parsed by format.Source, so invalid generated code fails
// here instead of at the consumer's build.
func Render(app *App) ([]byte, error) {
	var buf strings.Builder
	if err := appTemplate.Execute(&buf, app); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	out, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return out, nil
}
