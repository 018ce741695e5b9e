package template_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *TemplateController) Get(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	tmpl := sess.Template()
	if tmpl == nil {
		return response.SendNotFound(c, "No template uploaded")
	}

	return response.SendSuccess(c, "Template fetched", tmpl)
}
