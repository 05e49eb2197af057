package generator

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var appTemplate = template.Must(template.New("app").Funcs(sprig.TxtFuncMap()).Parse(appTemplateText))

const appTemplateText = `// Code generated by appforge generate; DO NOT EDIT.

// Package {{ .Package }} wraps the {{ .Title }} REST API with one method
// per endpoint.
package {{ .Package }}

{{ if .NeedsFmt -}}
import (
	"fmt"

	"github.com/agentware/appforge/internal/application"
)
{{- else -}}
import "github.com/agentware/appforge/internal/application"
{{- end }}

// {{ camelcase .Slug }}App exposes {{ .Title }} operations as tools.
type {{ camelcase .Slug }}App struct {
	*application.APIApplication
}

// New creates a {{ .Title }} application.
func New(integration *application.Integration, opts ...application.Option) *{{ camelcase .Slug }}App {
	return &{{ camelcase .Slug }}App{application.New("{{ .Slug }}", "{{ .BaseURL }}", integration, opts...)}
}
{{ range .Methods }}
// {{ .Name }} {{ .Doc }}
func (a *{{ camelcase $.Slug }}App) {{ .Name }}({{ range $i, $p := .Params }}{{ if $i }}, {{ end }}{{ $p.GoName }}{{ end }}{{ if .Params }} string{{ end }}{{ if .HasBody }}{{ if .Params }}, {{ end }}body map[string]any{{ end }}) (map[string]any, error) {
	{{- range .PathArgs }}
	if {{ .GoName }} == "" {
		return nil, fmt.Errorf("missing required parameter '{{ .Name }}'")
	}
	{{- end }}
	{{- if .PathArgs }}
	reqURL := fmt.Sprintf("%s{{ .PathFormat }}", a.BaseURL{{ range .PathArgs }}, {{ .GoName }}{{ end }})
	{{- else }}
	reqURL := a.BaseURL + "{{ .PathFormat }}"
	{{- end }}
	{{- if .QueryParams }}
	query := application.Query(
		{{- range .QueryParams }}
		"{{ .Name }}", {{ .GoName }},
		{{- end }}
	)
	{{- end }}
	resp, err := a.{{ .Verb }}(reqURL, {{ if .QueryParams }}query{{ else }}nil{{ end }}{{ if or (eq .Verb "Post") (eq .Verb "Put") (eq .Verb "Patch") }}, {{ if .HasBody }}body{{ else }}nil{{ end }}{{ end }})
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}
{{ end }}
// ListTools enumerates the methods exposed as agent tools.
func (a *{{ camelcase .Slug }}App) ListTools() []any {
	return []any{
		{{- range .Methods }}
		a.{{ .Name }},
		{{- end }}
	}
}
`
