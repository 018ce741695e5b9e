package ingest

import (
	"fmt"

	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	"gopkg.in/yaml.v3"
)

type layoutFile struct {
	Elements []layoutField `yaml:"elements" validate:"required,min=1,dive"`
}

type layoutField struct {
	ID       string           `yaml:"id" validate:"required"`
	Kind     model.FieldKind  `yaml:"type" validate:"required,oneof=name title sentence certificateId qrcode"`
	Position model.Position   `yaml:"position"`
	Size     model.Size       `yaml:"size"`
	Style    *model.TextStyle `yaml:"style"`
	Visible  *bool            `yaml:"visible"`
}

// LoadLayout parses a YAML field layout. Fields are visible unless they set
// visible: false; list order is drawing order.
func LoadLayout(data []byte) ([]model.Field, error) {
	var layout layoutFile
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := util.ValidateStruct(layout); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	seen := make(map[string]bool, len(layout.Elements))
	fields := make([]model.Field, 0, len(layout.Elements))
	for _, lf := range layout.Elements {
		if seen[lf.ID] {
			return nil, fmt.Errorf("invalid layout: duplicate field id %q", lf.ID)
		}
		seen[lf.ID] = true

		if lf.Kind.IsText() && lf.Style == nil {
			return nil, fmt.Errorf("invalid layout: text field %q has no style", lf.ID)
		}
		if lf.Kind == model.FieldVerificationCode {
			if lf.Size.Width <= 0 {
				return nil, fmt.Errorf("invalid layout: verification code %q needs a width", lf.ID)
			}
			lf.Size.Height = lf.Size.Width
			lf.Style = nil
		}

		visible := true
		if lf.Visible != nil {
			visible = *lf.Visible
		}
		fields = append(fields, model.Field{
			ID:       lf.ID,
			Kind:     lf.Kind,
			Position: lf.Position,
			Size:     lf.Size,
			Style:    lf.Style,
			Visible:  visible,
		})
	}
	return fields, nil
}
