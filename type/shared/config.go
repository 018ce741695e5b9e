package shared

import (
	"time"

	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

type Config struct {
	Environment *bool                  `yaml:"environment"`
	Port        *string                `yaml:"port" validate:"required"`
	Cors        []*string              `yaml:"cors"`
	LogLevel    string                 `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	SessionTTL  time.Duration          `yaml:"session_ttl" validate:"gte=0"`
	MaxUploadMB int                    `yaml:"max_upload_mb" validate:"gte=0"`
	FontDir     string                 `yaml:"font_dir"`
	Generation  model.GenerationConfig `yaml:"generation"`
	Batch       BatchConfig            `yaml:"batch"`
	MinIO       MinIOConfig            `yaml:"minio"`
	Signing     SigningConfig          `yaml:"signing"`
}

type BatchConfig struct {
	Workers               int    `yaml:"workers" validate:"gte=0,lte=64"`
	FailurePolicy         string `yaml:"failure_policy" validate:"omitempty,oneof=isolate abort"`
	DisambiguateFilenames bool   `yaml:"disambiguate_filenames"`
}

type MinIOConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint" validate:"required_if=Enabled true"`
	AccessKey string `yaml:"access_key" validate:"required_if=Enabled true"`
	SecretKey string `yaml:"secret_key" validate:"required_if=Enabled true"`
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket" validate:"required_if=Enabled true"`
	// Retention is how long uploaded archives are kept; 0 keeps them forever.
	Retention time.Duration `yaml:"retention" validate:"gte=0"`
}

type SigningConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertPath string `yaml:"cert_path" validate:"required_if=Enabled true"`
	KeyPath  string `yaml:"key_path" validate:"required_if=Enabled true"`
}

func (c *Config) IsProduction() bool {
	return c.Environment != nil && *c.Environment
}
