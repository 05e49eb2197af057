// Package hashnode wraps the Hashnode GraphQL API. Every operation goes
// through the single /graphql endpoint as a POST with a query document.
package hashnode

import (
	"fmt"

	"github.com/agentware/appforge/internal/application"
)

// HashnodeApp exposes Hashnode publication operations as tools.
type HashnodeApp struct {
	*application.APIApplication
}

// New creates a Hashnode application bound to the public GraphQL
// endpoint.
func New(integration *application.Integration, opts ...application.Option) *HashnodeApp {
	return &HashnodeApp{application.New("hashnode", "https://gql.hashnode.com", integration, opts...)}
}

const publicationQuery = `query Publication($host: String!) {
  publication(host: $host) {
    id
    title
    displayTitle
    url
    about { text }
  }
}`

// GetPublication fetches a publication's metadata by its host name,
// e.g. "blog.example.com".
func (a *HashnodeApp) GetPublication(host string) (map[string]any, error) {
	if host == "" {
		return nil, fmt.Errorf("missing required parameter 'host'")
	}
	body := map[string]any{
		"query":     publicationQuery,
		"variables": map[string]any{"host": host},
	}
	resp, err := a.Post(a.BaseURL, nil, body)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

const publishPostMutation = `mutation PublishPost($input: PublishPostInput!) {
  publishPost(input: $input) {
    post {
      id
      slug
      title
      url
    }
  }
}`

// PublishPost publishes a markdown article to a publication.
func (a *HashnodeApp) PublishPost(publicationID, title, contentMarkdown string) (map[string]any, error) {
	if publicationID == "" {
		return nil, fmt.Errorf("missing required parameter 'publication_id'")
	}
	if title == "" {
		return nil, fmt.Errorf("missing required parameter 'title'")
	}
	body := map[string]any{
		"query": publishPostMutation,
		"variables": map[string]any{
			"input": map[string]any{
				"publicationId":   publicationID,
				"title":           title,
				"contentMarkdown": contentMarkdown,
			},
		},
	}
	resp, err := a.Post(a.BaseURL, nil, body)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// ListTools enumerates the methods exposed as agent tools.
func (a *HashnodeApp) ListTools() []any {
	return []any{
		a.GetPublication,
		a.PublishPost,
	}
}
