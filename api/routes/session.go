package routes

import (
	"github.com/gofiber/fiber/v2"
	session_controller "github.com/sunthewhat/easy-cert-generator/api/controllers/session"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
)

func SetupSessionRoutes(router fiber.Router, deps Dependencies) {
	sessionCtrl := session_controller.NewSessionController(deps.Sessions)

	router.Post("session", sessionCtrl.Create)
	router.Delete("session", middleware.SessionMiddleware(deps.Sessions), sessionCtrl.Reset)
}
