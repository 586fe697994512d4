package middleware

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// RequestContext copies the request id, method and path into the request's
// user context so every log record written during the request carries them.
// Must run after requestid.New().
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals("requestid").(string)
		c.SetUserContext(logging.WithRequest(c.UserContext(), logging.Request{
			ID:     id,
			Method: utils.CopyString(c.Method()),
			Path:   utils.CopyString(c.Path()),
		}))
		return c.Next()
	}
}
