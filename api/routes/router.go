package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/metrics"
	"github.com/sunthewhat/easy-cert-generator/internal/renderer"
	"github.com/sunthewhat/easy-cert-generator/internal/session"
)

// Dependencies are the long-lived services shared by every route.
type Dependencies struct {
	Sessions       *session.Store
	Renderer       *renderer.Renderer
	Orchestrator   *batch.Orchestrator
	Archives       util.IArchiveStore
	MaxUploadBytes int64
}

func Init(router fiber.Router, deps Dependencies) {
	router.Get("metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := router.Group("api")

	SetupSessionRoutes(api, deps)
	SetupTemplateRoutes(api, deps)
	SetupParticipantRoutes(api, deps)
	SetupConfigRoutes(api, deps)
	SetupGenerateRoutes(api, deps)
}
