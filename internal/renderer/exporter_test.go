package renderer

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"image/color"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

func mediaBox(t *testing.T, doc []byte) (float64, float64) {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	require.Equal(t, 1, r.NumPage())

	page := r.Page(1)
	box := page.V.Key("MediaBox")
	if box.IsNull() {
		box = page.V.Key("Parent").Key("MediaBox")
	}
	require.Equal(t, 4, box.Len())
	return box.Index(2).Float64() - box.Index(0).Float64(),
		box.Index(3).Float64() - box.Index(1).Float64()
}

func TestExporter_PageMatchesSurface(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"landscape", 800, 600},
		{"portrait", 600, 848},
		{"square", 500, 500},
	}

	exporter := NewExporter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := exporter.Export(solidImage(tt.width, tt.height, color.White), sampleParticipant)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

			w, h := mediaBox(t, doc)
			assert.InDelta(t, float64(tt.width), w, 0.01)
			assert.InDelta(t, float64(tt.height), h, 0.01)
		})
	}
}

func TestExporter_Deterministic(t *testing.T) {
	exporter := NewExporter(nil)
	surface := solidImage(300, 200, color.NRGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})

	a, err := exporter.Export(surface, sampleParticipant)
	require.NoError(t, err)
	b, err := exporter.Export(surface, sampleParticipant)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

type stubSigner struct {
	out []byte
	err error
	ids []string
}

func (s *stubSigner) SignPDF(pdfBytes []byte, certificateID, participantID string) ([]byte, error) {
	s.ids = append(s.ids, certificateID, participantID)
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func TestExporter_Signer(t *testing.T) {
	surface := solidImage(100, 80, color.White)

	t.Run("signed output replaces document", func(t *testing.T) {
		signer := &stubSigner{out: []byte("%PDF-signed")}
		doc, err := NewExporter(signer).Export(surface, sampleParticipant)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-signed"), doc)
		assert.Equal(t, []string{"CERT-AB12-0001", "p-1"}, signer.ids)
	})

	t.Run("signing failure keeps unsigned document", func(t *testing.T) {
		signer := &stubSigner{err: errors.New("hsm offline")}
		doc, err := NewExporter(signer).Export(surface, sampleParticipant)
		require.NoError(t, err)
		unsigned, err := NewExporter(nil).Export(surface, sampleParticipant)
		require.NoError(t, err)
		assert.Equal(t, unsigned, doc)
	})
}

func TestRenderer_Document(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	doc, err := r.Document(context.Background(), whiteTemplate(800, 600, model.DefaultFields()...), sampleConfig, sampleParticipant)
	require.NoError(t, err)

	w, h := mediaBox(t, doc)
	assert.InDelta(t, 800, w, 0.01)
	assert.InDelta(t, 600, h, 0.01)

	_, err = r.Document(context.Background(), nil, sampleConfig, sampleParticipant)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func writeSigningMaterial(t *testing.T) shared.SigningConfig {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "Easy Cert Test Signer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}), 0o600))

	return shared.SigningConfig{Enabled: true, CertPath: certPath, KeyPath: keyPath}
}

func TestCertificateSigner(t *testing.T) {
	t.Run("disabled signer is a no-op", func(t *testing.T) {
		signer, err := NewCertificateSigner(shared.SigningConfig{})
		require.NoError(t, err)
		assert.False(t, signer.IsEnabled())

		in := []byte("%PDF-1.3 anything")
		out, err := signer.SignPDF(in, "CERT-1", "p-1")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("missing paths", func(t *testing.T) {
		_, err := NewCertificateSigner(shared.SigningConfig{Enabled: true})
		assert.Error(t, err)
	})

	t.Run("unreadable certificate", func(t *testing.T) {
		_, err := NewCertificateSigner(shared.SigningConfig{
			Enabled:  true,
			CertPath: filepath.Join(t.TempDir(), "missing.pem"),
			KeyPath:  filepath.Join(t.TempDir(), "missing.key"),
		})
		assert.Error(t, err)
	})

	t.Run("pkcs8 key signs exported document", func(t *testing.T) {
		signer, err := NewCertificateSigner(writeSigningMaterial(t))
		require.NoError(t, err)
		require.True(t, signer.IsEnabled())

		doc, err := NewExporter(nil).Export(solidImage(200, 100, color.White), sampleParticipant)
		require.NoError(t, err)

		signed, err := signer.SignPDF(doc, sampleParticipant.VerificationID, sampleParticipant.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(signed, doc), "signing only appends an incremental update")
		if len(signed) > len(doc) {
			assert.Contains(t, string(signed[len(doc):]), "/ByteRange")
		}
	})

	t.Run("garbage input is returned unchanged", func(t *testing.T) {
		signer, err := NewCertificateSigner(writeSigningMaterial(t))
		require.NoError(t, err)

		in := []byte("not a pdf at all")
		out, err := signer.SignPDF(in, "CERT-1", "p-1")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}
