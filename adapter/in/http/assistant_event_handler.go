package http

import (
	"github.com/gofiber/fiber/v2"

	"assistant_server/core/domain"
	"assistant_server/core/port/in"
	"assistant_server/pkg/apperr"
)

type EventHandler struct {
	service in.EventService
}

func NewEventHandler(service in.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) Register(r fiber.Router) {
	r.Post("/add_event", h.AddEvent)
	r.Post("/create-outlook-event", h.CreateOutlookEvent)
}

type addEventRequest struct {
	Provider  string   `json:"provider"`
	Summary   string   `json:"summary"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Attendees []string `json:"attendees"`
}

// AddEvent creates an event with the server-side Google credentials.
func (h *EventHandler) AddEvent(c *fiber.Ctx) error {
	var req addEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Provider == "" {
		req.Provider = "google"
	}

	created, err := h.service.CreateEvent(c.Context(), req.Provider, "", &domain.EventRequest{
		Summary:   req.Summary,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Attendees: req.Attendees,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"eventLink": created.Link,
		"provider":  created.Provider,
	})
}

type outlookEventRequest struct {
	AccessToken string `json:"access_token"`
	EventData   struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Location    string `json:"location"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		TimeZone    string `json:"timeZone"`
		// The extension sends either plain addresses or {"email": ...}
		// objects, sometimes mixed.
		Attendees []any `json:"attendees"`
	} `json:"event_data"`
}

// CreateOutlookEvent creates an event through Microsoft Graph with the
// caller's delegated token.
func (h *EventHandler) CreateOutlookEvent(c *fiber.Ctx) error {
	var req outlookEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.AccessToken == "" {
		return apperr.Unauthorized("missing access_token")
	}

	created, err := h.service.CreateEvent(c.Context(), "outlook", req.AccessToken, &domain.EventRequest{
		Summary:     req.EventData.Summary,
		Description: req.EventData.Description,
		Location:    req.EventData.Location,
		StartTime:   req.EventData.StartTime,
		EndTime:     req.EventData.EndTime,
		TimeZone:    req.EventData.TimeZone,
		Attendees:   flattenAttendees(req.EventData.Attendees),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":      created.ID,
		"webLink": created.Link,
		"message": "Event created",
	})
}

// flattenAttendees accepts both attendee encodings the extension has used.
func flattenAttendees(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if email, ok := v["email"].(string); ok {
				out = append(out, email)
			}
		}
	}
	return out
}
