package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/internal/session"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

const SessionHeader = "X-Session-Id"

// SessionMiddleware resolves the X-Session-Id header to a live session.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			return response.SendUnauthorized(c, "Session header required")
		}

		sess, err := store.Get(sessionID)
		if err != nil {
			slog.Debug("Unknown session", "session_id", sessionID)
			return response.SendUnauthorized(c, "Session not found or expired")
		}

		c.Locals("session", sess)
		return c.Next()
	}
}

func GetSessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	if sess, ok := c.Locals("session").(*session.Session); ok && sess != nil {
		return sess, true
	}
	return nil, false
}
