package generate_controller

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/type/payload"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

const itemFailedMessage = "Failed to generate certificate"

// GenerateBatch renders every participant of the session. The archive is
// returned as a zip attachment, or uploaded when an archive store is set.
func (ctrl *GenerateController) GenerateBatch(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	tmpl, cfg, participants := sess.Snapshot()
	result, err := ctrl.orchestrator.GenerateBatch(c.UserContext(), tmpl, cfg, participants, sess.Tracker())
	if err != nil {
		switch {
		case errors.Is(err, batch.ErrNoTemplate):
			return response.SendFailed(c, "Please upload a template first")
		case errors.Is(err, batch.ErrBatchRunning):
			return response.SendConflict(c, "Certificate generation is already in progress")
		default:
			slog.Error("Batch generation failed", "session_id", sess.ID, "error", err)
			return response.SendError(c, batch.UserMessage)
		}
	}

	generatedIDs := make([]string, 0, result.Generated)
	for _, item := range result.Items {
		if item.OK() {
			generatedIDs = append(generatedIDs, item.Participant.ID)
		}
	}
	sess.MarkGenerated(generatedIDs...)

	if ctrl.archives == nil {
		c.Set("X-Generated-Count", strconv.Itoa(result.Generated))
		c.Set("X-Failed-Count", strconv.Itoa(result.Failed))
		c.Attachment(result.ArchiveName)
		c.Set(fiber.HeaderContentType, "application/zip")
		return c.Send(result.Archive)
	}

	objectName := util.ArchiveObjectName(sess.ID, result.ArchiveName, ctrl.now())
	url, err := ctrl.archives.Upload(c.UserContext(), objectName, result.Archive, "application/zip")
	if err != nil {
		slog.Error("Failed to upload certificate archive", "session_id", sess.ID, "object", objectName, "error", err)
		return response.SendError(c, batch.UserMessage)
	}

	return response.SendSuccess(c, "Certificates generated", toBatchPayload(result, url))
}

func toBatchPayload(result *batch.Result, archiveURL string) payload.GenerateBatchPayload {
	out := payload.GenerateBatchPayload{
		ArchiveName: result.ArchiveName,
		ArchiveURL:  archiveURL,
		Generated:   result.Generated,
		Failed:      result.Failed,
		Collisions:  result.Collisions,
		Results:     make([]payload.GenerateItemResult, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		r := payload.GenerateItemResult{
			ParticipantID: item.Participant.ID,
			Name:          item.Participant.Name,
			CertificateID: item.Participant.VerificationID,
			Filename:      item.Filename,
			Status:        "success",
		}
		if !item.OK() {
			r.Status = "failed"
			r.Error = itemFailedMessage
		}
		out.Results = append(out.Results, r)
	}
	return out
}
