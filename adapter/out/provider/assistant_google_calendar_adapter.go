// Package provider implements calendar providers behind CalendarProviderPort.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
)

// GoogleCalendarAdapter creates events on the user's primary Google
// calendar. With an access token it authenticates as that token's user;
// otherwise it falls back to server-side OAuth credentials stored in
// credentialsFile and tokenFile.
type GoogleCalendarAdapter struct {
	credentialsFile string
	tokenFile       string
	timeZone        string
	log             zerolog.Logger
}

func NewGoogleCalendarAdapter(credentialsFile, tokenFile, timeZone string, log zerolog.Logger) *GoogleCalendarAdapter {
	return &GoogleCalendarAdapter{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
		timeZone:        timeZone,
		log:             log.With().Str("component", "google_calendar_adapter").Logger(),
	}
}

// CreateEvent inserts the event into the primary calendar.
func (a *GoogleCalendarAdapter) CreateEvent(ctx context.Context, accessToken string, event *domain.EventRequest) (*domain.CreatedEvent, error) {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	tz := event.TimeZone
	if tz == "" {
		tz = a.timeZone
	}

	gcal := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       &calendar.EventDateTime{DateTime: event.StartTime, TimeZone: tz},
		End:         &calendar.EventDateTime{DateTime: event.EndTime, TimeZone: tz},
	}
	for _, addr := range event.Attendees {
		gcal.Attendees = append(gcal.Attendees, &calendar.EventAttendee{Email: addr})
	}

	created, err := svc.Events.Insert("primary", gcal).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	a.log.Info().Str("event_id", created.Id).Msg("google event created")
	return &domain.CreatedEvent{
		ID:       created.Id,
		Link:     created.HtmlLink,
		Provider: "google",
	}, nil
}

// service builds a Calendar client for either auth path.
func (a *GoogleCalendarAdapter) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	if accessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
		svc, err := calendar.NewService(ctx, option.WithTokenSource(src))
		if err != nil {
			return nil, &out.ProviderError{
				Code:    out.ProviderErrInternal,
				Message: fmt.Sprintf("calendar client: %v", err),
			}
		}
		return svc, nil
	}

	cfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}
	token, err := a.storedToken()
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
	if err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("calendar client: %v", err),
		}
	}
	return svc, nil
}

func (a *GoogleCalendarAdapter) oauthConfig() (*oauth2.Config, error) {
	raw, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &out.ProviderError{
				Code:    out.ProviderErrNotConfigured,
				Message: "google calendar credentials not configured",
				Detail:  a.credentialsFile,
			}
		}
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("read credentials: %v", err),
		}
	}

	cfg, err := google.ConfigFromJSON(raw, calendar.CalendarScope)
	if err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("parse credentials: %v", err),
		}
	}
	return cfg, nil
}

// storedToken loads the token minted by the one-time interactive consent
// flow. The service never runs that flow itself.
func (a *GoogleCalendarAdapter) storedToken() (*oauth2.Token, error) {
	raw, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &out.ProviderError{
				Code:    out.ProviderErrNotConfigured,
				Message: "google calendar token not configured",
				Detail:  a.tokenFile,
			}
		}
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("read token: %v", err),
		}
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: fmt.Sprintf("parse token: %v", err),
		}
	}
	return &token, nil
}

// mapGoogleError converts API failures into provider error codes.
func mapGoogleError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &out.ProviderError{
			Code:    out.ProviderErrInternal,
			Message: err.Error(),
		}
	}

	code := out.ProviderErrInternal
	switch gerr.Code {
	case 401, 403:
		code = out.ProviderErrUnauthorized
	case 400:
		code = out.ProviderErrBadRequest
	}
	return &out.ProviderError{
		Code:    code,
		Status:  gerr.Code,
		Message: gerr.Message,
		Detail:  gerr.Body,
	}
}
