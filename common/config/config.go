package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/sunthewhat/easy-cert-generator/common"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

func Default() *shared.Config {
	port := ":8000"
	environment := false
	return &shared.Config{
		Environment: &environment,
		Port:        &port,
		LogLevel:    "info",
		SessionTTL:  2 * time.Hour,
		MaxUploadMB: 20,
		Generation:  model.DefaultGenerationConfig(),
		Batch: shared.BatchConfig{
			Workers:       1,
			FailurePolicy: "isolate",
		},
		MinIO: shared.MinIOConfig{
			Retention: 7 * 24 * time.Hour,
		},
	}
}

// LoadConfig reads path over the defaults, validates it and publishes it as
// common.Config. A missing file yields the defaults.
func LoadConfig(path string) (*shared.Config, error) {
	if path == "" {
		path = DefaultPath
	}
	config := Default()

	yml, readErr := os.ReadFile(path)
	switch {
	case errors.Is(readErr, fs.ErrNotExist):
		slog.Warn("Config file not found, using defaults", "path", path)
	case readErr != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
	default:
		if unmarshalErr := yaml.Unmarshal(yml, config); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", path, unmarshalErr)
		}
	}

	if validateErr := util.ValidateStruct(config); validateErr != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, validateErr)
	}

	common.Config = config
	return config, nil
}
