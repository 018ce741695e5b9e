package payload

import "github.com/sunthewhat/easy-cert-generator/type/shared/model"

// UpdateFieldPayload carries a partial edit; nil members are left unchanged.
type UpdateFieldPayload struct {
	X       *float64         `json:"x" validate:"omitempty,gte=0,lte=100"`
	Y       *float64         `json:"y" validate:"omitempty,gte=0,lte=100"`
	Width   *float64         `json:"width" validate:"omitempty,gt=0"`
	Visible *bool            `json:"visible"`
	Style   *model.TextStyle `json:"style"`
}
