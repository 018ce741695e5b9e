package template_controller

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/internal/ingest"
	"github.com/sunthewhat/easy-cert-generator/type/response"
)

func (ctrl *TemplateController) Upload(c *fiber.Ctx) error {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Invalid session context")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.SendFailed(c, "Template image is required")
	}
	if ctrl.maxUploadBytes > 0 && file.Size > ctrl.maxUploadBytes {
		return response.SendFailed(c, "Template image is too large")
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

	tmpl, err := ingest.DecodeTemplate(file.Filename, data)
	if err != nil {
		slog.Warn("Template upload rejected", "session_id", sess.ID, "file", file.Filename, "error", err)
		if errors.Is(err, ingest.ErrUnsupportedFormat) {
			return response.SendFailed(c, "Unsupported image format")
		}
		return response.SendFailed(c, "Failed to decode template image")
	}

	sess.SetTemplate(tmpl)
	slog.Info("Template uploaded",
		"session_id", sess.ID,
		"template_id", tmpl.ID,
		"width", tmpl.Width,
		"height", tmpl.Height)

	return response.SendSuccess(c, "Template uploaded", tmpl)
}
