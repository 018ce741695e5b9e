package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

// CertificateSigner applies a certification signature to exported PDFs.
// A disabled signer is a no-op.
type CertificateSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	enabled     bool
	now         func() time.Time
}

func NewCertificateSigner(cfg shared.SigningConfig) (*CertificateSigner, error) {
	if !cfg.Enabled {
		slog.Info("PDF signing disabled in configuration")
		return &CertificateSigner{enabled: false}, nil
	}
	if cfg.CertPath == "" || cfg.KeyPath == "" {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certificate, err := loadCertificate(cfg.CertPath)
	if err != nil {
		return nil, err
	}
	privateKey, err := loadPrivateKey(cfg.KeyPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Certificate signer initialized successfully",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &CertificateSigner{
		certificate: certificate,
		privateKey:  privateKey,
		enabled:     true,
		now:         time.Now,
	}, nil
}

func loadCertificate(path string) (*x509.Certificate, error) {
	certPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", path, err)
	}
	block, _ := pem.Decode(certPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", path)
	}
	certificate, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return certificate, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", path, err)
	}
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", path)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	// PKCS8 fallback
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA format")
	}
	return rsaKey, nil
}

// SignPDF returns the signed document, or the input unchanged if signing is
// disabled or the signing library fails.
func (s *CertificateSigner) SignPDF(pdfBytes []byte, certificateID, participantID string) (signed []byte, err error) {
	if !s.enabled {
		return pdfBytes, nil
	}
	if len(pdfBytes) == 0 {
		return pdfBytes, fmt.Errorf("empty PDF bytes")
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     "Easy Cert Generator",
				Location: "Digital Certificate Platform",
				Reason:   fmt.Sprintf("Certificate %s issued to participant %s", certificateID, participantID),
				Date:     s.now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	// pdfsign panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic occurred during PDF signing",
				"panic", r,
				"cert_id", certificateID,
				"participant_id", participantID)
			signed, err = pdfBytes, nil
		}
	}()

	input := bytes.NewReader(pdfBytes)
	reader, err := digitorus_pdf.NewReader(input, int64(len(pdfBytes)))
	if err != nil {
		slog.Warn("Failed to read PDF for signing", "error", err, "cert_id", certificateID)
		return pdfBytes, nil
	}
	if _, err := input.Seek(0, io.SeekStart); err != nil {
		return pdfBytes, nil
	}

	var output bytes.Buffer
	if err := sign.Sign(input, &output, reader, int64(len(pdfBytes)), signData); err != nil || output.Len() == 0 {
		slog.Warn("PDF signing failed or produced empty output, returning unsigned PDF",
			"cert_id", certificateID,
			"participant_id", participantID,
			"error", err)
		return pdfBytes, nil
	}

	slog.Debug("PDF signed",
		"cert_id", certificateID,
		"participant_id", participantID,
		"signed_size", output.Len())
	return output.Bytes(), nil
}

func (s *CertificateSigner) IsEnabled() bool {
	return s.enabled
}
