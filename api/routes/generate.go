package routes

import (
	"github.com/gofiber/fiber/v2"
	generate_controller "github.com/sunthewhat/easy-cert-generator/api/controllers/generate"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
)

func SetupGenerateRoutes(router fiber.Router, deps Dependencies) {
	generateCtrl := generate_controller.NewGenerateController(deps.Renderer, deps.Orchestrator, deps.Archives)
	sessionMiddleware := middleware.SessionMiddleware(deps.Sessions)

	router.Get("preview/:index", sessionMiddleware, generateCtrl.Preview)
	router.Get("progress", sessionMiddleware, generateCtrl.Progress)

	generateGroup := router.Group("generate")

	generateGroup.Use(sessionMiddleware)

	generateGroup.Post("", generateCtrl.GenerateBatch)
	generateGroup.Get(":index", generateCtrl.GenerateSingle)
}
