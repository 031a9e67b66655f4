package http

import (
	"github.com/gofiber/fiber/v2"

	"assistant_server/pkg/apperr"
)

// parseBody decodes the JSON request body, mapping malformed input to a
// client error instead of Fiber's default 500.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.BadRequest("invalid JSON body").WithError(err)
	}
	return nil
}
