package generate_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/internal/session"
	"github.com/sunthewhat/easy-cert-generator/type/response"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

func (ctrl *GenerateController) Preview(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return response.SendFailed(c, "Participant index must be a number")
	}

	tmpl, cfg, _ := sess.Snapshot()
	if tmpl == nil {
		return response.SendFailed(c, "Please upload a template first")
	}

	p, err := sess.Participant(index)
	switch {
	case errors.Is(err, session.ErrNoParticipantsLoaded):
		p = model.SampleParticipant(cfg.IDPrefix)
	case err != nil:
		return response.SendNotFound(c, "Participant not found")
	}

	png, err := ctrl.renderer.Preview(c.UserContext(), tmpl, cfg, p)
	if err != nil {
		slog.Error("Failed to render preview", "session_id", sess.ID, "participant_id", p.ID, "error", err)
		return response.SendError(c, "Failed to render preview")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(png)
}
