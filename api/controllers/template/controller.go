package template_controller

// TemplateController handles template upload and field editing
type TemplateController struct {
	maxUploadBytes int64
}

func NewTemplateController(maxUploadBytes int64) *TemplateController {
	return &TemplateController{maxUploadBytes: maxUploadBytes}
}
