package application

import "net/http"

// Integration supplies authentication for an application. It is
// injected at construction time and applied to every outgoing request.
type Integration struct {
	Name   string
	APIKey string
	// Header names the header carrying the credential. Defaults to
	// Authorization.
	Header string
	// Scheme prefixes the credential value, e.g. "Bearer". Ignored for
	// non-Authorization headers when empty.
	Scheme string
	// Extra holds additional static headers some vendors require.
	Extra map[string]string
}

// NewBearerIntegration covers the common Authorization: Bearer case.
func NewBearerIntegration(name, apiKey string) *Integration {
	return &Integration{Name: name, APIKey: apiKey, Scheme: "Bearer"}
}

// Apply sets the integration's headers on req.
func (i *Integration) Apply(req *http.Request) {
	if i.APIKey != "" {
		header := i.Header
		if header == "" {
			header = "Authorization"
		}
		value := i.APIKey
		if i.Scheme != "" {
			value = i.Scheme + " " + i.APIKey
		}
		req.Header.Set(header, value)
	}
	for k, v := range i.Extra {
		req.Header.Set(k, v)
	}
}
