package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	_ "golang.org/x/image/webp"
)

// DecodeTemplate decodes a background image and returns a template with the
// default field layout. The template size is the image's intrinsic size.
func DecodeTemplate(filename string, data []byte) (*model.Template, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedFormat)
	}
	bg, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
		}
		return nil, fmt.Errorf("failed to decode template image: %w", err)
	}
	if b := bg.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("template image has no pixels")
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return model.NewTemplate(uuid.NewString(), name, bg, model.DefaultFields()), nil
}
