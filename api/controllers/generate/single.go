package generate_controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *GenerateController) GenerateSingle(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return response.SendFailed(c, "Participant index must be a number")
	}

	p, err := sess.Participant(index)
	if err != nil {
		return response.SendNotFound(c, "Participant not found")
	}

	tmpl, cfg, _ := sess.Snapshot()
	doc, filename, err := ctrl.orchestrator.GenerateOne(c.UserContext(), tmpl, cfg, p)
	if err != nil {
		if errors.Is(err, batch.ErrNoTemplate) {
			return response.SendFailed(c, "Please upload a template first")
		}
		return response.SendError(c, "Failed to generate certificate")
	}

	sess.MarkGenerated(p.ID)

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
