package event

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/apperr"
	"assistant_server/pkg/resilience"
)

type stubProvider struct {
	created *domain.CreatedEvent
	err     error
	gotReq  *domain.EventRequest
	gotTok  string
}

func (s *stubProvider) CreateEvent(_ context.Context, accessToken string, req *domain.EventRequest) (*domain.CreatedEvent, error) {
	s.gotReq = req
	s.gotTok = accessToken
	return s.created, s.err
}

func newTestService(p out.CalendarProviderPort) *Service {
	return NewService(map[string]out.CalendarProviderPort{"google": p}, resilience.New("test-calendar"))
}

func validRequest() *domain.EventRequest {
	return &domain.EventRequest{
		Summary:   "Sync",
		StartTime: "2025-01-17T18:00:00-06:00",
		EndTime:   "2025-01-17T20:00:00-06:00",
		Attendees: []string{"kim@example.com", "the whole team", " lee@example.com "},
	}
}

func TestCreateEvent_Success(t *testing.T) {
	provider := &stubProvider{created: &domain.CreatedEvent{ID: "ev1", Link: "https://cal/ev1", Provider: "google"}}
	svc := newTestService(provider)

	got, err := svc.CreateEvent(context.Background(), "google", "tok", validRequest())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if got.ID != "ev1" || got.Provider != "google" {
		t.Errorf("created = %+v", got)
	}
	if provider.gotTok != "tok" {
		t.Errorf("token = %q", provider.gotTok)
	}
	want := []string{"kim@example.com", "lee@example.com"}
	if !reflect.DeepEqual(provider.gotReq.Attendees, want) {
		t.Errorf("attendees = %v, want %v", provider.gotReq.Attendees, want)
	}
}

func TestCreateEvent_MissingTimes(t *testing.T) {
	svc := newTestService(&stubProvider{})

	for _, tt := range []struct {
		name string
		req  *domain.EventRequest
	}{
		{"start_time", &domain.EventRequest{EndTime: "x"}},
		{"end_time", &domain.EventRequest{StartTime: "x"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), "google", "", tt.req)
			ae := apperr.AsAppError(err)
			if ae == nil || ae.Code != apperr.CodeMissingField {
				t.Fatalf("err = %v, want missing field", err)
			}
		})
	}
}

func TestCreateEvent_UnknownProvider(t *testing.T) {
	svc := newTestService(&stubProvider{})

	_, err := svc.CreateEvent(context.Background(), "caldav", "", validRequest())
	ae := apperr.AsAppError(err)
	if ae == nil || ae.Code != apperr.CodeBadRequest {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestCreateEvent_ProviderErrorPassesThrough(t *testing.T) {
	pe := &out.ProviderError{Code: out.ProviderErrUnauthorized, Status: 401, Message: "expired token"}
	svc := newTestService(&stubProvider{err: pe})

	_, err := svc.CreateEvent(context.Background(), "google", "tok", validRequest())
	got, ok := out.AsProviderError(err)
	if !ok || got.Code != out.ProviderErrUnauthorized {
		t.Fatalf("err = %v, want provider unauthorized", err)
	}
}

func TestCreateEvent_UnknownErrorWrapped(t *testing.T) {
	svc := newTestService(&stubProvider{err: errors.New("tcp reset")})

	_, err := svc.CreateEvent(context.Background(), "google", "tok", validRequest())
	ae := apperr.AsAppError(err)
	if ae == nil || ae.Code != apperr.CodeExternalError {
		t.Fatalf("err = %v, want external error", err)
	}
}

func TestCreateEvent_DefaultSummary(t *testing.T) {
	provider := &stubProvider{created: &domain.CreatedEvent{ID: "ev2", Provider: "google"}}
	svc := newTestService(provider)

	req := validRequest()
	req.Summary = ""
	if _, err := svc.CreateEvent(context.Background(), "google", "", req); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if provider.gotReq.Summary != domain.DefaultMeetingSummary {
		t.Errorf("summary = %q", provider.gotReq.Summary)
	}
}
