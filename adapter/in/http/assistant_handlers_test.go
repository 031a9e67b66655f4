package http

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/infra/middleware"
)

type fakeSuggestionService struct {
	result string
	err    error
}

func (f *fakeSuggestionService) GenerateSuggestion(_ context.Context, _ string) (string, error) {
	return f.result, f.err
}

type fakeMeetingService struct {
	result *domain.ParsedMeeting
	err    error
}

func (f *fakeMeetingService) ParseMeeting(_ context.Context, _ string) (*domain.ParsedMeeting, error) {
	return f.result, f.err
}

type fakeEventService struct {
	result      *domain.CreatedEvent
	err         error
	gotProvider string
	gotToken    string
	gotReq      *domain.EventRequest
}

func (f *fakeEventService) CreateEvent(_ context.Context, provider, accessToken string, req *domain.EventRequest) (*domain.CreatedEvent, error) {
	f.gotProvider = provider
	f.gotToken = accessToken
	f.gotReq = req
	return f.result, f.err
}

func newTestApp(register func(fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*nethttp.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func TestHealth(t *testing.T) {
	app := newTestApp(NewHealthHandler().Register)

	for _, path := range []string{"/", "/health"} {
		resp, body := doJSON(t, app, "GET", path, "")
		if resp.StatusCode != 200 {
			t.Errorf("GET %s status = %d", path, resp.StatusCode)
		}
		if body["status"] != "ok" || body["service"] != "email-assistant-backend" {
			t.Errorf("GET %s body = %v", path, body)
		}
	}
}

func TestGenerateSuggestion(t *testing.T) {
	app := newTestApp(NewSuggestionHandler(&fakeSuggestionService{result: "Polished."}).Register)

	resp, body := doJSON(t, app, "POST", "/generate-suggestion", `{"new_email_content":"rough draft"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["draft"] != "Polished." {
		t.Errorf("body = %v", body)
	}
}

func TestGenerateSuggestion_LegacyDraftField(t *testing.T) {
	app := newTestApp(NewSuggestionHandler(&fakeSuggestionService{result: "ok"}).Register)

	resp, _ := doJSON(t, app, "POST", "/generate-suggestion", `{"draft":"old client"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGenerateSuggestion_EmptyDraft(t *testing.T) {
	app := newTestApp(NewSuggestionHandler(&fakeSuggestionService{}).Register)

	resp, body := doJSON(t, app, "POST", "/generate-suggestion", `{"new_email_content":"  "}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestParseMeeting(t *testing.T) {
	parsed := &domain.ParsedMeeting{
		Summary:   "Sync",
		Attendees: []string{"kim@example.com"},
		Date:      "2025-01-17",
		Hour:      6,
		Minute:    30,
		AmPm:      "pm",
		StartTime: "2025-01-17T18:30:00-06:00",
		EndTime:   "2025-01-17T20:30:00-06:00",
	}
	app := newTestApp(NewMeetingHandler(&fakeMeetingService{result: parsed}).Register)

	resp, body := doJSON(t, app, "POST", "/parse-meeting", `{"draft":"sync friday 6:30pm"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["summary"] != "Sync" || body["date"] != "2025-01-17" {
		t.Errorf("body = %v", body)
	}
	if body["hour"] != float64(6) || body["ampm"] != "pm" {
		t.Errorf("time fields = %v", body)
	}
	if body["start_time"] != "2025-01-17T18:30:00-06:00" {
		t.Errorf("start_time = %v", body["start_time"])
	}
}

func TestParseMeeting_MissingDraft(t *testing.T) {
	app := newTestApp(NewMeetingHandler(&fakeMeetingService{}).Register)

	resp, _ := doJSON(t, app, "POST", "/parse-meeting", `{}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAddEvent(t *testing.T) {
	svc := &fakeEventService{result: &domain.CreatedEvent{ID: "ev1", Link: "https://cal/ev1", Provider: "google"}}
	app := newTestApp(NewEventHandler(svc).Register)

	resp, body := doJSON(t, app, "POST", "/add_event",
		`{"summary":"Sync","start_time":"2025-01-17T18:00:00-06:00","end_time":"2025-01-17T20:00:00-06:00","attendees":["kim@example.com"]}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["eventLink"] != "https://cal/ev1" || body["provider"] != "google" {
		t.Errorf("body = %v", body)
	}
	if svc.gotProvider != "google" || svc.gotToken != "" {
		t.Errorf("provider/token = %q/%q", svc.gotProvider, svc.gotToken)
	}
}

func TestCreateOutlookEvent(t *testing.T) {
	svc := &fakeEventService{result: &domain.CreatedEvent{ID: "AAMk1", Link: "https://outlook/AAMk1", Provider: "outlook"}}
	app := newTestApp(NewEventHandler(svc).Register)

	payload := `{
		"access_token": "tok",
		"event_data": {
			"summary": "Review",
			"start_time": "2025-01-17T18:00:00",
			"end_time": "2025-01-17T20:00:00",
			"attendees": ["kim@example.com", {"email": "lee@example.com"}, 42]
		}
	}`
	resp, body := doJSON(t, app, "POST", "/create-outlook-event", payload)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["id"] != "AAMk1" || body["message"] != "Event created" {
		t.Errorf("body = %v", body)
	}
	if svc.gotProvider != "outlook" || svc.gotToken != "tok" {
		t.Errorf("provider/token = %q/%q", svc.gotProvider, svc.gotToken)
	}
	want := []string{"kim@example.com", "lee@example.com"}
	if len(svc.gotReq.Attendees) != 2 || svc.gotReq.Attendees[0] != want[0] || svc.gotReq.Attendees[1] != want[1] {
		t.Errorf("attendees = %v, want %v", svc.gotReq.Attendees, want)
	}
}

func TestCreateOutlookEvent_MissingToken(t *testing.T) {
	app := newTestApp(NewEventHandler(&fakeEventService{}).Register)

	resp, _ := doJSON(t, app, "POST", "/create-outlook-event", `{"event_data":{"start_time":"x","end_time":"y"}}`)
	if resp.StatusCode != 401 {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProviderErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthorized", &out.ProviderError{Code: out.ProviderErrUnauthorized, Status: 401, Message: "bad token"}, 401},
		{"not configured", &out.ProviderError{Code: out.ProviderErrNotConfigured, Message: "no credentials"}, 501},
		{"upstream failure", &out.ProviderError{Code: out.ProviderErrInternal, Status: 503, Message: "graph down"}, 503},
		{"no upstream status", &out.ProviderError{Code: out.ProviderErrInternal, Message: "dial error"}, 502},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewEventHandler(&fakeEventService{err: tt.err}).Register)
			resp, body := doJSON(t, app, "POST", "/add_event", `{"start_time":"a","end_time":"b"}`)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body["success"] != false {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(NewSuggestionHandler(&fakeSuggestionService{}).Register)

	resp, _ := doJSON(t, app, "POST", "/generate-suggestion", `{not json`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
