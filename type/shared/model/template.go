package model

import (
	"errors"
	"fmt"
	"image"
)

var ErrFieldNotFound = errors.New("field not found")

// FieldKind identifies what content a positioned field carries.
type FieldKind string

const (
	FieldParticipantName  FieldKind = "name"
	FieldCourseTitle      FieldKind = "title"
	FieldFixedSentence    FieldKind = "sentence"
	FieldCertificateID    FieldKind = "certificateId"
	FieldVerificationCode FieldKind = "qrcode"
)

// MaxEditablePosition keeps a field's anchor on-canvas while it is dragged.
const MaxEditablePosition = 95.0

func (k FieldKind) IsValid() bool {
	switch k {
	case FieldParticipantName, FieldCourseTitle, FieldFixedSentence, FieldCertificateID, FieldVerificationCode:
		return true
	}
	return false
}

// IsText reports whether the kind is rendered as a text run.
func (k FieldKind) IsText() bool {
	return k.IsValid() && k != FieldVerificationCode
}

// Position is a percentage of the template dimensions, in [0,100].
type Position struct {
	X float64 `json:"x" yaml:"x" validate:"gte=0,lte=100"`
	Y float64 `json:"y" yaml:"y" validate:"gte=0,lte=100"`
}

type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"gte=0"`
	Height float64 `json:"height" yaml:"height" validate:"gte=0"`
}

type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type TextStyle struct {
	FontSize   float64    `json:"fontSize" yaml:"font_size" validate:"gt=0"`
	FontFamily string     `json:"fontFamily" yaml:"font_family"`
	Color      string     `json:"color" yaml:"color"`
	FontWeight FontWeight `json:"fontWeight" yaml:"font_weight" validate:"omitempty,oneof=normal bold"`
	TextAlign  TextAlign  `json:"textAlign" yaml:"text_align" validate:"omitempty,oneof=left center right"`
}

// Field is one positioned element on the template. Style is nil for the
// verification code, which uses Size.Width as its square footprint.
type Field struct {
	ID       string     `json:"id" yaml:"id"`
	Kind     FieldKind  `json:"type" yaml:"type"`
	Position Position   `json:"position" yaml:"position"`
	Size     Size       `json:"size" yaml:"size"`
	Style    *TextStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Visible  bool       `json:"visible" yaml:"visible"`
}

func (f Field) clone() Field {
	if f.Style != nil {
		style := *f.Style
		f.Style = &style
	}
	return f
}

// Template is a background image with positioned fields. Width and Height are
// the intrinsic pixel size of the decoded background and never change.
type Template struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Background image.Image `json:"-"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Fields     []Field     `json:"elements"`
}

// NewTemplate fixes the canvas size from the background's bounds.
func NewTemplate(id, name string, background image.Image, fields []Field) *Template {
	bounds := background.Bounds()
	return &Template{
		ID:         id,
		Name:       name,
		Background: background,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Fields:     fields,
	}
}

// Clone copies the field list so the copy can be rendered while the original
// keeps being edited. The background image is shared; it is never mutated.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := *t
	out.Fields = make([]Field, len(t.Fields))
	for i, f := range t.Fields {
		out.Fields[i] = f.clone()
	}
	return &out
}

func (t *Template) IsLandscape() bool {
	return t.Width > t.Height
}

func (t *Template) indexOf(fieldID string) (int, error) {
	for i := range t.Fields {
		if t.Fields[i].ID == fieldID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrFieldNotFound, fieldID)
}

// Field returns a copy of the field with the given id.
func (t *Template) Field(fieldID string) (Field, bool) {
	i, err := t.indexOf(fieldID)
	if err != nil {
		return Field{}, false
	}
	return t.Fields[i].clone(), true
}

// MoveField sets a field position, clamping both axes to [0,95].
func (t *Template) MoveField(fieldID string, x, y float64) error {
	i, err := t.indexOf(fieldID)
	if err != nil {
		return err
	}
	t.Fields[i].Position = Position{X: clampPosition(x), Y: clampPosition(y)}
	return nil
}

func (t *Template) SetFieldVisible(fieldID string, visible bool) error {
	i, err := t.indexOf(fieldID)
	if err != nil {
		return err
	}
	t.Fields[i].Visible = visible
	return nil
}

func (t *Template) SetFieldStyle(fieldID string, style TextStyle) error {
	i, err := t.indexOf(fieldID)
	if err != nil {
		return err
	}
	if !t.Fields[i].Kind.IsText() {
		return fmt.Errorf("field %q of kind %s has no text style", fieldID, t.Fields[i].Kind)
	}
	t.Fields[i].Style = &style
	return nil
}

// ResizeField sets the footprint. The verification code stays square.
func (t *Template) ResizeField(fieldID string, width float64) error {
	if width <= 0 {
		return fmt.Errorf("field width must be positive, got %v", width)
	}
	i, err := t.indexOf(fieldID)
	if err != nil {
		return err
	}
	if t.Fields[i].Kind == FieldVerificationCode {
		t.Fields[i].Size = Size{Width: width, Height: width}
		return nil
	}
	t.Fields[i].Size.Width = width
	return nil
}

func clampPosition(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxEditablePosition {
		return MaxEditablePosition
	}
	return v
}
