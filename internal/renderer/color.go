package renderer

import (
	"image/color"
	"strconv"
	"strings"
)

var defaultTextColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// ParseHexColor accepts #rrggbb and #rgb. Anything else falls back to black.
func ParseHexColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return defaultTextColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defaultTextColor
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
