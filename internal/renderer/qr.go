package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/skip2/go-qrcode"
)

var ErrEmptyContent = errors.New("verification code content is empty")

// CodeEncoder turns a verification URL into a scannable image.
type CodeEncoder interface {
	Encode(content string, displaySize int) (image.Image, error)
}

var (
	codeDark  = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x5f, A: 0xff}
	codeLight = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// QREncoder renders QR codes at twice the display size so they stay
// scannable after being scaled down into the field footprint.
type QREncoder struct {
	Level     qrcode.RecoveryLevel
	Dark      color.Color
	Light     color.Color
	QuietZone int

	cache *gocache.Cache
}

func NewQREncoder() *QREncoder {
	return &QREncoder{
		Level:     qrcode.Medium,
		Dark:      codeDark,
		Light:     codeLight,
		QuietZone: 1,
		cache:     gocache.New(10*time.Minute, 20*time.Minute),
	}
}

// Encode returns a square image of side 2*displaySize. Images are cached by
// content and size and must not be modified by callers.
func (e *QREncoder) Encode(content string, displaySize int) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if displaySize <= 0 {
		return nil, fmt.Errorf("invalid verification code size %d", displaySize)
	}

	size := displaySize * 2
	cacheKey := fmt.Sprintf("qr:%d:%s", size, content)
	if e.cache != nil {
		if cached, found := e.cache.Get(cacheKey); found {
			return cached.(image.Image), nil
		}
	}

	q, err := qrcode.New(content, e.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap) + 2*e.QuietZone
	scale := size / modules
	if scale < 1 {
		scale = 1
		size = modules
	}
	offset := (size-modules*scale)/2 + e.QuietZone*scale

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(e.Light), image.Point{}, draw.Src)
	dark := image.NewUniform(e.Dark)
	for y, row := range bitmap {
		for x, on := range row {
			if !on {
				continue
			}
			module := image.Rect(
				offset+x*scale, offset+y*scale,
				offset+(x+1)*scale, offset+(y+1)*scale,
			)
			draw.Draw(img, module, dark, image.Point{}, draw.Src)
		}
	}

	if e.cache != nil {
		e.cache.Set(cacheKey, image.Image(img), gocache.DefaultExpiration)
	}
	return img, nil
}
