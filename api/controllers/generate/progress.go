package generate_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *GenerateController) Progress(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}
	return response.SendSuccess(c, "Progress fetched", sess.Progress())
}
