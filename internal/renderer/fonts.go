package renderer

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// DejaVu Sans Condensed covers Arabic, including the presentation forms
// produced by shapeArabic.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejavuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejavuBold []byte
)

// FontBook maps CSS-like family names to parsed fonts. Parsed fonts are
// read-only and shared; faces are created per draw because opentype faces
// keep per-instance buffers.
type FontBook struct {
	mu       sync.RWMutex
	families map[string]map[model.FontWeight]*opentype.Font
	// fallbacks are tried in order once no listed family covers the text.
	fallbacks map[model.FontWeight][]*opentype.Font
}

func NewFontBook() (*FontBook, error) {
	embedded := []struct {
		name   string
		weight model.FontWeight
		data   []byte
	}{
		{"Go Regular", model.WeightNormal, goregular.TTF},
		{"Go Bold", model.WeightBold, gobold.TTF},
		{"DejaVu Sans Condensed", model.WeightNormal, dejavuRegular},
		{"DejaVu Sans Condensed Bold", model.WeightBold, dejavuBold},
	}

	fallbacks := make(map[model.FontWeight][]*opentype.Font)
	for _, e := range embedded {
		f, err := opentype.Parse(e.data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded font %s: %w", e.name, err)
		}
		fallbacks[e.weight] = append(fallbacks[e.weight], f)
	}

	return &FontBook{
		families:  make(map[string]map[model.FontWeight]*opentype.Font),
		fallbacks: fallbacks,
	}, nil
}

// Register adds a TrueType/OpenType font under family for the given weight.
func (b *FontBook) Register(family string, weight model.FontWeight, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %s (%s): %w", family, weight, err)
	}
	key := normalizeFamily(family)
	if key == "" {
		return fmt.Errorf("font family name is empty")
	}
	if weight != model.WeightBold {
		weight = model.WeightNormal
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.families[key] == nil {
		b.families[key] = make(map[model.FontWeight]*opentype.Font)
	}
	b.families[key][weight] = f
	return nil
}

// LoadDir registers every .ttf/.otf file in dir. "Cairo-Bold.ttf" registers
// the bold face of family "Cairo"; any other name registers a normal face.
func (b *FontBook) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read font directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("Failed to read font file", "file", entry.Name(), "error", err)
			continue
		}
		family, weight := familyFromFilename(entry.Name())
		if err := b.Register(family, weight, data); err != nil {
			slog.Warn("Failed to register font", "file", entry.Name(), "error", err)
			continue
		}
		loaded++
	}

	slog.Info("Fonts loaded", "dir", dir, "count", loaded)
	return loaded, nil
}

// Face returns a new face for the first font that has a glyph for every
// rune of text: the listed families first, then the embedded Go and DejaVu
// fonts. When none covers it the first listed family (or Go) is used. The
// caller must Close the face.
func (b *FontBook) Face(families string, weight model.FontWeight, sizePx float64, text string) (font.Face, error) {
	f := b.lookup(families, weight, text)
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func (b *FontBook) lookup(families string, weight model.FontWeight, text string) *opentype.Font {
	if weight != model.WeightBold {
		weight = model.WeightNormal
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	var candidates []*opentype.Font
	for _, name := range strings.Split(families, ",") {
		faces, ok := b.families[normalizeFamily(name)]
		if !ok {
			continue
		}
		if f, ok := faces[weight]; ok {
			candidates = append(candidates, f)
		} else if f, ok := faces[model.WeightNormal]; ok {
			candidates = append(candidates, f)
		}
	}
	candidates = append(candidates, b.fallbacks[weight]...)

	var buf sfnt.Buffer
	for _, f := range candidates {
		if covers(f, &buf, text) {
			return f
		}
	}
	return candidates[0]
}

// covers reports whether f maps every visible rune of text to a real glyph.
func covers(f *opentype.Font, buf *sfnt.Buffer, text string) bool {
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		idx, err := f.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}

func normalizeFamily(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	return strings.ToLower(strings.TrimSpace(name))
}

func familyFromFilename(filename string) (string, model.FontWeight) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if idx := strings.LastIndex(base, "-"); idx > 0 {
		family, variant := base[:idx], strings.ToLower(base[idx+1:])
		switch variant {
		case "bold":
			return family, model.WeightBold
		case "regular":
			return family, model.WeightNormal
		}
	}
	return base, model.WeightNormal
}
