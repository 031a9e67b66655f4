package out

import (
	"context"
	"errors"
	"fmt"

	"assistant_server/core/domain"
)

// Provider error codes.
const (
	ProviderErrUnauthorized  = "unauthorized"
	ProviderErrBadRequest    = "bad_request"
	ProviderErrNotConfigured = "not_configured"
	ProviderErrInternal      = "provider_error"
)

// ProviderError is a typed failure from a calendar provider. Detail carries
// the raw provider response body for diagnostics.
type ProviderError struct {
	Code    string
	Status  int // upstream HTTP status, 0 when not applicable
	Message string
	Detail  string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("calendar provider: %s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("calendar provider: %s: %s", e.Code, e.Message)
}

// AsProviderError extracts a ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// CalendarProviderPort creates events at an external calendar provider.
// accessToken is the caller-supplied bearer token; adapters that hold
// server-side credentials may accept an empty token.
type CalendarProviderPort interface {
	CreateEvent(ctx context.Context, accessToken string, event *domain.EventRequest) (*domain.CreatedEvent, error)
}
