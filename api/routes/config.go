package routes

import (
	"github.com/gofiber/fiber/v2"
	config_controller "github.com/sunthewhat/easy-cert-generator/api/controllers/config"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
)

func SetupConfigRoutes(router fiber.Router, deps Dependencies) {
	configGroup := router.Group("config")

	configGroup.Use(middleware.SessionMiddleware(deps.Sessions))

	configGroup.Get("", config_controller.Get)
	configGroup.Put("", config_controller.Update)
}
