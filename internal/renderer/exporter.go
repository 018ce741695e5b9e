package renderer

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

const jpegQuality = 95

// documentEpoch is stamped as the creation date so identical inputs give
// identical documents.
var documentEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Signer post-processes an exported document. Implementations must return
// the input unchanged when they cannot sign it.
type Signer interface {
	SignPDF(pdfBytes []byte, certificateID, participantID string) ([]byte, error)
}

// Exporter wraps a composited surface into a single-page PDF whose page is
// exactly the template size, one pixel to one point.
type Exporter struct {
	signer Signer
}

func NewExporter(signer Signer) *Exporter {
	return &Exporter{signer: signer}
}

func (e *Exporter) Export(surface image.Image, p model.Participant) ([]byte, error) {
	b := surface.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %vx%v", width, height)
	}

	var jpg bytes.Buffer
	if err := imaging.Encode(&jpg, surface, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	orientation := "P"
	if width > height {
		orientation = "L"
	}
	// gofpdf swaps Wd/Ht for landscape, so pass the short side as Wd.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: math.Min(width, height), Ht: math.Max(width, height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(documentEpoch)
	pdf.SetTitle("Certificate - "+p.Name, true)
	pdf.SetCreator("easy-cert-generator", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("certificate", opts, &jpg)
	pdf.ImageOptions("certificate", 0, 0, width, height, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	pdfBytes := out.Bytes()

	if e.signer != nil {
		signed, err := e.signer.SignPDF(pdfBytes, p.VerificationID, p.ID)
		if err != nil {
			slog.Warn("Failed to sign PDF, returning unsigned version",
				"error", err,
				"cert_id", p.VerificationID,
				"participant_id", p.ID)
		} else if len(signed) > 0 {
			pdfBytes = signed
		}
	}

	return pdfBytes, nil
}
