package renderer

import (
	"context"
	"fmt"

	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

// Renderer runs the full per-participant pipeline: compositing followed by
// document export.
type Renderer struct {
	compositor *Compositor
	exporter   *Exporter
}

func New(fonts *FontBook, encoder CodeEncoder, signer Signer) *Renderer {
	return &Renderer{
		compositor: NewCompositor(NewFieldRenderer(fonts, encoder)),
		exporter:   NewExporter(signer),
	}
}

// NewDefault builds a renderer with the embedded fonts, the standard QR
// encoder and no signing.
func NewDefault() (*Renderer, error) {
	fonts, err := NewFontBook()
	if err != nil {
		return nil, err
	}
	return New(fonts, NewQREncoder(), nil), nil
}

func (r *Renderer) Document(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ([]byte, error) {
	surface, err := r.compositor.Composite(ctx, tmpl, cfg, p)
	if err != nil {
		return nil, err
	}
	doc, err := r.exporter.Export(surface, p)
	if err != nil {
		return nil, fmt.Errorf("failed to export certificate for %s: %w", p.Name, err)
	}
	return doc, nil
}

func (r *Renderer) Preview(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ([]byte, error) {
	return r.compositor.Preview(ctx, tmpl, cfg, p)
}

func (r *Renderer) Compositor() *Compositor {
	return r.compositor
}
