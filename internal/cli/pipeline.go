package cli

import (
	"log/slog"

	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/renderer"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

// buildRenderer assembles fonts, the QR encoder and the optional signer.
func buildRenderer(cfg *shared.Config) (*renderer.Renderer, error) {
	fonts, err := renderer.NewFontBook()
	if err != nil {
		return nil, err
	}
	if cfg.FontDir != "" {
		if _, err := fonts.LoadDir(cfg.FontDir); err != nil {
			slog.Warn("Failed to load font directory, using embedded fonts", "dir", cfg.FontDir, "error", err)
		}
	}

	var signer renderer.Signer
	if cfg.Signing.Enabled {
		s, err := renderer.NewCertificateSigner(cfg.Signing)
		if err != nil {
			slog.Warn("Failed to initialize PDF signer, signatures will be disabled", "error", err)
		} else {
			signer = s
		}
	}

	return renderer.New(fonts, renderer.NewQREncoder(), signer), nil
}

func batchOptions(cfg *shared.Config) batch.Options {
	return batch.Options{
		Workers:      cfg.Batch.Workers,
		Policy:       batch.ParseFailurePolicy(cfg.Batch.FailurePolicy),
		Disambiguate: cfg.Batch.DisambiguateFilenames,
	}
}
