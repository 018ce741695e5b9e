package config_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func Get(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}
	return response.SendSuccess(c, "Config fetched", sess.Config())
}

// Update replaces the generation config. Batches already running keep the
// config they started with.
func Update(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	body := new(payload.UpdateConfigPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendValidationFailed(c, "Invalid config", util.GetValidationErrors(err))
	}

	cfg := body.ToModel()
	sess.SetConfig(cfg)
	slog.Info("Generation config updated", "session_id", sess.ID, "course_title", cfg.CourseTitle)

	return response.SendSuccess(c, "Config updated", cfg)
}
