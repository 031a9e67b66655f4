package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
)

// graphBaseURL is a variable so tests can point the adapter at a local server.
var graphBaseURL = "https://graph.microsoft.com/v1.0"

const defaultEventBody = "Created automatically by Email Assistant"

// OutlookCalendarAdapter creates events through the Microsoft Graph
// /me/events endpoint using a caller-supplied delegated access token.
type OutlookCalendarAdapter struct {
	client   *http.Client
	timeZone string
	log      zerolog.Logger
}

func NewOutlookCalendarAdapter(client *http.Client, timeZone string, log zerolog.Logger) *OutlookCalendarAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &OutlookCalendarAdapter{
		client:   client,
		timeZone: timeZone,
		log:      log.With().Str("component", "outlook_calendar_adapter").Logger(),
	}
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphAttendee struct {
	EmailAddress struct {
		Address string `json:"address"`
		Name    string `json:"name"`
	} `json:"emailAddress"`
	Type string `json:"type"`
}

type graphEvent struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Start     graphDateTime   `json:"start"`
	End       graphDateTime   `json:"end"`
	Attendees []graphAttendee `json:"attendees,omitempty"`
	Location  *struct {
		DisplayName string `json:"displayName"`
	} `json:"location,omitempty"`
}

// CreateEvent posts the event to Graph. 201 is the only success status.
func (a *OutlookCalendarAdapter) CreateEvent(ctx context.Context, accessToken string, event *domain.EventRequest) (*domain.CreatedEvent, error) {
	if accessToken == "" {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrUnauthorized,
			Status:  http.StatusUnauthorized,
			Message: "missing access token",
		}
	}

	payload := a.toGraphEvent(event)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("encode event: %v", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphBaseURL+"/me/events", bytes.NewReader(body))
	if err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("build request: %v", err),
		}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("graph request: %v", err),
		}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusCreated:
		var created struct {
			ID      string `json:"id"`
			WebLink string `json:"webLink"`
		}
		if err := json.Unmarshal(raw, &created); err != nil {
			return nil, &out.ProviderError{
				Code:    out.ProviderErrInternal,
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("decode response: %v", err),
			}
		}
		a.log.Info().Str("event_id", created.ID).Msg("outlook event created")
		return &domain.CreatedEvent{ID: created.ID, Link: created.WebLink, Provider: "outlook"}, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &out.ProviderError{
			Code:    out.ProviderErrUnauthorized,
			Status:  resp.StatusCode,
			Message: "graph rejected the access token",
			Detail:  string(raw),
		}

	default:
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("graph error %d", resp.StatusCode),
			Detail:  string(raw),
		}
	}
}

func (a *OutlookCalendarAdapter) toGraphEvent(event *domain.EventRequest) *graphEvent {
	tz := event.TimeZone
	if tz == "" {
		tz = a.timeZone
	}

	ge := &graphEvent{
		Subject: event.Summary,
		Start:   graphDateTime{DateTime: event.StartTime, TimeZone: tz},
		End:     graphDateTime{DateTime: event.EndTime, TimeZone: tz},
	}
	ge.Body.ContentType = "HTML"
	ge.Body.Content = event.Description
	if ge.Body.Content == "" {
		ge.Body.Content = defaultEventBody
	}

	for _, addr := range event.Attendees {
		var att graphAttendee
		att.EmailAddress.Address = addr
		att.EmailAddress.Name = strings.SplitN(addr, "@", 2)[0]
		att.Type = "required"
		ge.Attendees = append(ge.Attendees, att)
	}

	if event.Location != "" {
		ge.Location = &struct {
			DisplayName string `json:"displayName"`
		}{DisplayName: event.Location}
	}
	return ge
}
