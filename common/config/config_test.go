package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-generator/common"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Same(t, cfg, common.Config)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8000", *cfg.Port)
	assert.Equal(t, model.DefaultGenerationConfig(), cfg.Generation)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: true
port: ":9090"
session_ttl: 30m
generation:
  course_title: "Intro to Testing"
  id_prefix: "ACME"
batch:
  workers: 4
  failure_policy: abort
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", *cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20, cfg.MaxUploadMB)
	assert.Equal(t, "Intro to Testing", cfg.Generation.CourseTitle)
	assert.Equal(t, "ACME", cfg.Generation.IDPrefix)
	assert.Equal(t, model.DefaultFixedSentence, cfg.Generation.FixedSentence)
	assert.Equal(t, model.DefaultVerificationBaseURL, cfg.Generation.VerificationBaseURL)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "abort", cfg.Batch.FailurePolicy)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "port: [\n"},
		{"unknown log level", "log_level: verbose\n"},
		{"unknown failure policy", "batch:\n  failure_policy: retry\n"},
		{"too many workers", "batch:\n  workers: 500\n"},
		{"minio without endpoint", "minio:\n  enabled: true\n  bucket: certs\n"},
		{"signing without key", "signing:\n  enabled: true\n  cert_path: cert.pem\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
