package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const defaultFontSize = 16.0

// FieldRenderer draws one field onto a raster surface.
type FieldRenderer struct {
	fonts   *FontBook
	encoder CodeEncoder
}

func NewFieldRenderer(fonts *FontBook, encoder CodeEncoder) *FieldRenderer {
	return &FieldRenderer{fonts: fonts, encoder: encoder}
}

// Render draws field at the resolved position. Invisible fields, empty
// content and text fields without a style are skipped.
func (r *FieldRenderer) Render(dst draw.Image, field model.Field, at Point, content string) error {
	if !field.Visible || content == "" {
		return nil
	}
	if field.Kind == model.FieldVerificationCode {
		return r.DrawCode(dst, at, content, field.Size.Width)
	}
	if field.Style == nil {
		return nil
	}
	return r.DrawText(dst, at, content, *field.Style)
}

// DrawText draws text whose visual centre sits on at.Y; at.X is the left
// edge, centre or right edge depending on the alignment. Arabic is shaped
// and right-to-left runs are reordered before drawing.
func (r *FieldRenderer) DrawText(dst draw.Image, at Point, text string, style model.TextStyle) error {
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	text = visualOrder(text)
	face, err := r.fonts.Face(style.FontFamily, style.FontWeight, size, text)
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	width := float64(font.MeasureString(face, text)) / 64
	x := at.X
	switch style.TextAlign {
	case model.AlignCenter:
		x -= width / 2
	case model.AlignRight:
		x -= width
	}

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64
	baseline := at.Y + (ascent-descent)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ParseHexColor(style.Color)),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)},
	}
	d.DrawString(text)
	return nil
}

// DrawCode draws the verification code as a square of the given side,
// centred on at.
func (r *FieldRenderer) DrawCode(dst draw.Image, at Point, content string, side float64) error {
	px := int(math.Round(side))
	if px <= 0 {
		return fmt.Errorf("invalid verification code size %v", side)
	}

	code, err := r.encoder.Encode(content, px)
	if err != nil {
		return err
	}
	if b := code.Bounds(); b.Dx() != px || b.Dy() != px {
		code = imaging.Resize(code, px, px, imaging.Lanczos)
	}

	origin := image.Pt(
		int(math.Round(at.X-side/2)),
		int(math.Round(at.Y-side/2)),
	)
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(px, px))}
	draw.Draw(dst, rect, code, code.Bounds().Min, draw.Over)
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
