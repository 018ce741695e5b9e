package renderer

import "github.com/sunthewhat/easy-cert-generator/type/shared/model"

// Point is an absolute pixel position on the template canvas.
type Point struct {
	X float64
	Y float64
}

// MapPosition converts a percent-of-template position to absolute pixels.
func MapPosition(pos model.Position, width, height int) Point {
	return Point{
		X: pos.X / 100 * float64(width),
		Y: pos.Y / 100 * float64(height),
	}
}
