package routes

import (
	"github.com/gofiber/fiber/v2"
	participant_controller "github.com/sunthewhat/easy-cert-generator/api/controllers/participant"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
)

func SetupParticipantRoutes(router fiber.Router, deps Dependencies) {
	participantCtrl := participant_controller.NewParticipantController(deps.MaxUploadBytes)

	participantGroup := router.Group("participants")

	participantGroup.Use(middleware.SessionMiddleware(deps.Sessions))

	participantGroup.Post("", participantCtrl.Upload)
	participantGroup.Get("", participantCtrl.Get)
}
