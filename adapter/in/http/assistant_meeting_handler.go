package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"assistant_server/core/port/in"
	"assistant_server/pkg/apperr"
)

type MeetingHandler struct {
	service in.MeetingService
}

func NewMeetingHandler(service in.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

func (h *MeetingHandler) Register(r fiber.Router) {
	r.Post("/parse-meeting", h.ParseMeeting)
}

type meetingRequest struct {
	Draft string `json:"draft"`
}

// ParseMeeting extracts a concrete meeting proposal from the posted draft.
func (h *MeetingHandler) ParseMeeting(c *fiber.Ctx) error {
	var req meetingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Draft) == "" {
		return apperr.MissingField("draft")
	}

	parsed, err := h.service.ParseMeeting(c.Context(), req.Draft)
	if err != nil {
		return err
	}
	return c.JSON(parsed)
}
