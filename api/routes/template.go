package routes

import (
	"github.com/gofiber/fiber/v2"
	template_controller "github.com/sunthewhat/easy-cert-generator/api/controllers/template"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
)

func SetupTemplateRoutes(router fiber.Router, deps Dependencies) {
	templateCtrl := template_controller.NewTemplateController(deps.MaxUploadBytes)

	templateGroup := router.Group("template")

	templateGroup.Use(middleware.SessionMiddleware(deps.Sessions))

	templateGroup.Post("", templateCtrl.Upload)
	templateGroup.Get("", templateCtrl.Get)
	templateGroup.Put("fields/:fieldId", templateCtrl.UpdateField)
}
