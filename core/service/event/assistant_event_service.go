// Package event routes calendar event creation to the configured provider.
package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/apperr"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/resilience"
)

// Service validates event requests and dispatches them to a calendar
// provider by name.
type Service struct {
	providers map[string]out.CalendarProviderPort
	breaker   *resilience.Breaker
	log       *logger.Logger
}

func NewService(providers map[string]out.CalendarProviderPort, breaker *resilience.Breaker) *Service {
	return &Service{
		providers: providers,
		breaker:   breaker,
		log:       logger.Default().WithField("component", "event-service"),
	}
}

// CreateEvent creates a calendar event with the named provider. The access
// token is empty for providers that authenticate server-side.
func (s *Service) CreateEvent(ctx context.Context, provider, accessToken string, req *domain.EventRequest) (*domain.CreatedEvent, error) {
	if req.StartTime == "" {
		return nil, apperr.MissingField("start_time")
	}
	if req.EndTime == "" {
		return nil, apperr.MissingField("end_time")
	}

	p, ok := s.providers[provider]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("unsupported provider %q", provider))
	}

	req.Attendees = filterAddresses(req.Attendees)
	if req.Summary == "" {
		req.Summary = domain.DefaultMeetingSummary
	}

	start := time.Now()
	created, err := resilience.Execute(s.breaker, func() (*domain.CreatedEvent, error) {
		return p.CreateEvent(ctx, accessToken, req)
	})
	if err != nil {
		if _, isProvider := out.AsProviderError(err); isProvider {
			return nil, err
		}
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.ExternalError(provider, err)
	}

	s.log.WithFields(map[string]any{
		"provider": provider,
		"event_id": created.ID,
	}).WithDuration(time.Since(start)).Info("calendar event created")
	return created, nil
}

// filterAddresses keeps only entries that look like email addresses.
func filterAddresses(attendees []string) []string {
	filtered := make([]string, 0, len(attendees))
	for _, a := range attendees {
		a = strings.TrimSpace(a)
		if strings.Contains(a, "@") {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
