package participant_controller

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/internal/ingest"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *ParticipantController) Upload(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.SendFailed(c, "Participant file is required")
	}
	if ctrl.maxUploadBytes > 0 && file.Size > ctrl.maxUploadBytes {
		return response.SendFailed(c, "Participant file is too large")
	}

	src, err := file.Open()
	if err != nil {
		return response.SendError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.SendError(c, "Failed to read uploaded file")
	}

	participants, err := ingest.ParseParticipants(file.Filename, data, sess.Config().IDPrefix, ctrl.now())
	if err != nil {
		slog.Warn("Participant upload rejected", "session_id", sess.ID, "file", file.Filename, "error", err)
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFormat):
			return response.SendFailed(c, "Please upload an Excel (.xlsx) or CSV file")
		case errors.Is(err, ingest.ErrNoParticipants):
			return response.SendFailed(c, "No participant names found in the first column")
		default:
			return response.SendFailed(c, "Error reading participant file")
		}
	}

	sess.SetParticipants(participants)
	slog.Info("Participants uploaded", "session_id", sess.ID, "file", file.Filename, "count", len(participants))

	return response.SendSuccess(c, "Participants uploaded", payload.ParticipantListPayload{
		FileName:     file.Filename,
		Count:        len(participants),
		Participants: participants,
	})
}
