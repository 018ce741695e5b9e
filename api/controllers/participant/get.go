package participant_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *ParticipantController) Get(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	participants := sess.Participants()
	return response.SendSuccess(c, "Participants fetched", payload.ParticipantListPayload{
		Count:        len(participants),
		Participants: participants,
	})
}
