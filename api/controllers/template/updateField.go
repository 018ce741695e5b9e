package template_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

func (ctrl *TemplateController) UpdateField(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	fieldID := c.Params("fieldId")
	if fieldID == "" {
		return response.SendFailed(c, "Field ID is required")
	}

	body := new(payload.UpdateFieldPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendValidationFailed(c, "Invalid field update", util.GetValidationErrors(err))
	}

	tmpl, err := sess.EditTemplate(func(tmpl *model.Template) error {
		return applyFieldUpdate(tmpl, fieldID, body)
	})
	if err != nil {
		switch {
		case errors.Is(err, batch.ErrNoTemplate):
			return response.SendNotFound(c, "No template uploaded")
		case errors.Is(err, model.ErrFieldNotFound):
			return response.SendNotFound(c, "Field not found")
		default:
			slog.Warn("Rejected template field update",
				"session_id", sess.ID,
				"field_id", fieldID,
				"error", err)
			return response.SendFailed(c, "Invalid field update")
		}
	}

	field, _ := tmpl.Field(fieldID)
	return response.SendSuccess(c, "Field updated", field)
}

func applyFieldUpdate(tmpl *model.Template, fieldID string, body *payload.UpdateFieldPayload) error {
	current, ok := tmpl.Field(fieldID)
	if !ok {
		return model.ErrFieldNotFound
	}

	if body.X != nil || body.Y != nil {
		x, y := current.Position.X, current.Position.Y
		if body.X != nil {
			x = *body.X
		}
		if body.Y != nil {
			y = *body.Y
		}
		if err := tmpl.MoveField(fieldID, x, y); err != nil {
			return err
		}
	}
	if body.Width != nil {
		if err := tmpl.ResizeField(fieldID, *body.Width); err != nil {
			return err
		}
	}
	if body.Visible != nil {
		if err := tmpl.SetFieldVisible(fieldID, *body.Visible); err != nil {
			return err
		}
	}
	if body.Style != nil {
		if err := tmpl.SetFieldStyle(fieldID, *body.Style); err != nil {
			return err
		}
	}
	return nil
}
