package session_controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/session"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

// SessionController handles session lifecycle requests
type SessionController struct {
	store *session.Store
}

func NewSessionController(store *session.Store) *SessionController {
	return &SessionController{store: store}
}

func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	sess := ctrl.store.Create()
	return response.SendCreated(c, "Session created", payload.SessionPayload{SessionID: sess.ID})
}

func (ctrl *SessionController) Reset(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	if err := sess.Reset(); err != nil {
		if errors.Is(err, batch.ErrBatchRunning) {
			return response.SendConflict(c, "Certificate generation is in progress")
		}
		return err
	}

	return response.SendSuccess(c, "Session reset")
}
