package generate_controller

import (
	"time"

	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/renderer"
)

// GenerateController handles preview, single and batch generation requests
type GenerateController struct {
	renderer     *renderer.Renderer
	orchestrator *batch.Orchestrator
	archives     util.IArchiveStore
	now          func() time.Time
}

// NewGenerateController wires the pipeline. archives may be nil, in which
// case batch archives are streamed back in the response.
func NewGenerateController(r *renderer.Renderer, orchestrator *batch.Orchestrator, archives util.IArchiveStore) *GenerateController {
	return &GenerateController{
		renderer:     r,
		orchestrator: orchestrator,
		archives:     archives,
		now:          time.Now,
	}
}
