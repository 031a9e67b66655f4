package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"assistant_server/core/port/in"
	"assistant_server/pkg/apperr"
)

type SuggestionHandler struct {
	service in.SuggestionService
}

func NewSuggestionHandler(service in.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

func (h *SuggestionHandler) Register(r fiber.Router) {
	r.Post("/generate-suggestion", h.GenerateSuggestion)
}

type suggestionRequest struct {
	// The extension's content script sends new_email_content; older clients
	// send draft.
	NewEmailContent string `json:"new_email_content"`
	Draft           string `json:"draft"`
}

// GenerateSuggestion rewrites the posted draft and returns it under the
// "draft" key the extension expects.
func (h *SuggestionHandler) GenerateSuggestion(c *fiber.Ctx) error {
	var req suggestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	draft := strings.TrimSpace(req.NewEmailContent)
	if draft == "" {
		draft = strings.TrimSpace(req.Draft)
	}
	if draft == "" {
		return apperr.MissingField("new_email_content")
	}

	suggestion, err := h.service.GenerateSuggestion(c.Context(), draft)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"draft": suggestion})
}
