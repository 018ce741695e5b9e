package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

var ErrNoTemplate = errors.New("no template loaded")

// Compositor renders one full certificate surface per participant.
type Compositor struct {
	fields      *FieldRenderer
	backgrounds *gocache.Cache
}

func NewCompositor(fields *FieldRenderer) *Compositor {
	return &Compositor{
		fields:      fields,
		backgrounds: gocache.New(30*time.Minute, time.Hour),
	}
}

// Composite draws the stretched background, then every visible field in
// list order. A field that fails to render is logged and left out.
// Cancellation is checked before each field.
func (c *Compositor) Composite(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) (*image.NRGBA, error) {
	if tmpl == nil || tmpl.Background == nil {
		return nil, ErrNoTemplate
	}
	if tmpl.Width <= 0 || tmpl.Height <= 0 {
		return nil, fmt.Errorf("invalid template size %dx%d", tmpl.Width, tmpl.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface := image.NewNRGBA(image.Rect(0, 0, tmpl.Width, tmpl.Height))
	draw.Draw(surface, surface.Bounds(), c.background(tmpl), image.Point{}, draw.Src)

	for _, field := range tmpl.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !field.Visible {
			continue
		}
		content := cfg.Content(field.Kind, p)
		at := MapPosition(field.Position, tmpl.Width, tmpl.Height)
		if err := c.fields.Render(surface, field, at, content); err != nil {
			slog.Warn("Field skipped while compositing certificate",
				"template_id", tmpl.ID,
				"field_id", field.ID,
				"field_type", field.Kind,
				"participant_id", p.ID,
				"error", err)
		}
	}

	return surface, nil
}

// Preview composites and encodes the result as PNG for on-screen display.
func (c *Compositor) Preview(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ([]byte, error) {
	surface, err := c.Composite(ctx, tmpl, cfg, p)
	if err != nil {
		return nil, err
	}
	return EncodePNG(surface)
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// background returns the template image stretched to exactly Width x Height.
// The result is shared between renders and only ever used as a draw source.
func (c *Compositor) background(tmpl *model.Template) image.Image {
	b := tmpl.Background.Bounds()
	if b.Dx() == tmpl.Width && b.Dy() == tmpl.Height && b.Min == (image.Point{}) {
		return tmpl.Background
	}
	if tmpl.ID == "" {
		return imaging.Resize(tmpl.Background, tmpl.Width, tmpl.Height, imaging.Lanczos)
	}

	cacheKey := fmt.Sprintf("bg:%s:%dx%d", tmpl.ID, tmpl.Width, tmpl.Height)
	if cached, found := c.backgrounds.Get(cacheKey); found {
		return cached.(image.Image)
	}
	stretched := imaging.Resize(tmpl.Background, tmpl.Width, tmpl.Height, imaging.Lanczos)
	c.backgrounds.Set(cacheKey, image.Image(stretched), gocache.DefaultExpiration)
	return stretched
}
