package in

import (
	"context"

	"assistant_server/core/domain"
)

// SuggestionService rewrites email drafts through the oracle.
type SuggestionService interface {
	// GenerateSuggestion returns the rewritten draft. Oracle failures fall
	// back to the original draft and are never surfaced to the caller.
	GenerateSuggestion(ctx context.Context, draft string) (string, error)
}

// MeetingService extracts meeting intent from email drafts.
type MeetingService interface {
	// ParseMeeting resolves summary, date, time-of-day and attendees from a
	// draft, substituting documented defaults for anything the oracle or the
	// text fails to yield.
	ParseMeeting(ctx context.Context, draft string) (*domain.ParsedMeeting, error)
}

// EventService creates calendar events via a named provider.
type EventService interface {
	CreateEvent(ctx context.Context, provider, accessToken string, req *domain.EventRequest) (*domain.CreatedEvent, error)
}
