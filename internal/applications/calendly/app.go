// Package calendly wraps the Calendly scheduling REST API with one
// method per endpoint.
package calendly

import (
	"fmt"

	"github.com/agentware/appforge/internal/application"
)

// CalendlyApp exposes Calendly scheduled-event operations as tools.
type CalendlyApp struct {
	*application.APIApplication
}

// New creates a Calendly application bound to the public API.
func New(integration *application.Integration, opts ...application.Option) *CalendlyApp {
	return &CalendlyApp{application.New("calendly", "https://api.calendly.com", integration, opts...)}
}

// ListEventInvitees retrieves a paginated list of invitees for a
// scheduled event. Results can be filtered by status or email, sorted
// by creation date, and paged with pageToken and count.
func (a *CalendlyApp) ListEventInvitees(uuid, status, sort, email, pageToken, count string) (map[string]any, error) {
	if uuid == "" {
		return nil, fmt.Errorf("missing required parameter 'uuid'")
	}
	reqURL := fmt.Sprintf("%s/scheduled_events/%s/invitees", a.BaseURL, uuid)
	query := application.Query(
		"status", status,
		"sort", sort,
		"email", email,
		"page_token", pageToken,
		"count", count,
	)
	resp, err := a.Get(reqURL, query)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// GetScheduledEvent retrieves the details of a single scheduled event
// by its UUID.
func (a *CalendlyApp) GetScheduledEvent(uuid string) (map[string]any, error) {
	if uuid == "" {
		return nil, fmt.Errorf("missing required parameter 'uuid'")
	}
	reqURL := fmt.Sprintf("%s/scheduled_events/%s", a.BaseURL, uuid)
	resp, err := a.Get(reqURL, nil)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// GetEventInvitee fetches a single invitee of a scheduled event,
// identified by the event and invitee UUIDs together.
func (a *CalendlyApp) GetEventInvitee(eventUUID, inviteeUUID string) (map[string]any, error) {
	if eventUUID == "" {
		return nil, fmt.Errorf("missing required parameter 'event_uuid'")
	}
	if inviteeUUID == "" {
		return nil, fmt.Errorf("missing required parameter 'invitee_uuid'")
	}
	reqURL := fmt.Sprintf("%s/scheduled_events/%s/invitees/%s", a.BaseURL, eventUUID, inviteeUUID)
	resp, err := a.Get(reqURL, nil)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// ListScheduledEvents returns scheduled events for a user or
// organization, optionally filtered by invitee email and status.
func (a *CalendlyApp) ListScheduledEvents(user, organization, inviteeEmail, status, sort, pageToken, count string) (map[string]any, error) {
	reqURL := fmt.Sprintf("%s/scheduled_events", a.BaseURL)
	query := application.Query(
		"user", user,
		"organization", organization,
		"invitee_email", inviteeEmail,
		"status", status,
		"sort", sort,
		"page_token", pageToken,
		"count", count,
	)
	resp, err := a.Get(reqURL, query)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// CancelEvent cancels a scheduled event with an optional reason.
func (a *CalendlyApp) CancelEvent(uuid, reason string) (map[string]any, error) {
	if uuid == "" {
		return nil, fmt.Errorf("missing required parameter 'uuid'")
	}
	reqURL := fmt.Sprintf("%s/scheduled_events/%s/cancellation", a.BaseURL, uuid)
	body := map[string]any{}
	if reason != "" {
		body["reason"] = reason
	}
	resp, err := a.Post(reqURL, nil, body)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// CreateSchedulingLink creates a single-use scheduling link for an
// event type.
func (a *CalendlyApp) CreateSchedulingLink(maxEventCount int, owner, ownerType string) (map[string]any, error) {
	if owner == "" {
		return nil, fmt.Errorf("missing required parameter 'owner'")
	}
	if ownerType == "" {
		return nil, fmt.Errorf("missing required parameter 'owner_type'")
	}
	reqURL := fmt.Sprintf("%s/scheduling_links", a.BaseURL)
	body := map[string]any{
		"max_event_count": maxEventCount,
		"owner":           owner,
		"owner_type":      ownerType,
	}
	resp, err := a.Post(reqURL, nil, body)
	if err != nil {
		return nil, err
	}
	return a.HandleResponse(resp)
}

// ListTools enumerates the methods exposed as agent tools.
func (a *CalendlyApp) ListTools() []any {
	return []any{
		a.ListEventInvitees,
		a.GetScheduledEvent,
		a.GetEventInvitee,
		a.ListScheduledEvents,
		a.CancelEvent,
		a.CreateSchedulingLink,
	}
}
