// Package core contains the business logic for TaskBoard: the task store,
// the drag state machine, the board controller that ties them together, and
// configuration loading.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// ConfigFileName is the base name of the configuration file, without extension.
const ConfigFileName = ".taskboard"

// ConfigurationManager defines the interface for loading and validating
// configuration from .taskboard.yaml.
type ConfigurationManager interface {
	LoadConfig() (*models.BoardConfig, error)
	ValidateConfig(cfg *models.BoardConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the directory where .taskboard.yaml resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a BoardConfig populated with sensible defaults.
func DefaultConfig() *models.BoardConfig {
	return &models.BoardConfig{
		Board: models.BoardSettings{
			Variant:  models.VariantTwoZone,
			SeedDemo: true,
		},
		Log: models.LogSettings{
			Level:  "warn",
			Format: "text",
		},
		Events: models.EventSettings{
			Enabled: true,
			Path:    ".taskboard_events.jsonl",
		},
	}
}

// LoadConfig reads .taskboard.yaml from the base path using Viper.
// If the file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.BoardConfig, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("board.variant", string(cfg.Board.Variant))
	v.SetDefault("board.seed_demo", cfg.Board.SeedDemo)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("events.enabled", cfg.Events.Enabled)
	v.SetDefault("events.path", cfg.Events.Path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s.yaml: %w", ConfigFileName, err)
	}

	cfg.Board.Variant = models.Variant(strings.ToLower(v.GetString("board.variant")))
	cfg.Board.SeedDemo = v.GetBool("board.seed_demo")
	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))
	cfg.Log.File = v.GetString("log.file")
	cfg.Events.Enabled = v.GetBool("events.enabled")
	cfg.Events.Path = v.GetString("events.path")

	return cfg, nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

var validLogFormats = map[string]bool{
	"text":   true,
	"json":   true,
	"logfmt": true,
}

// ValidateConfig checks cfg for invalid values and reports every problem
// found in one error.
func (cm *viperConfigManager) ValidateConfig(cfg *models.BoardConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	switch cfg.Board.Variant {
	case models.VariantSingle, models.VariantTwoZone:
	default:
		errs = append(errs, fmt.Sprintf(
			"board.variant %q is invalid, must be one of: single, two-zone",
			cfg.Board.Variant,
		))
	}

	if !validLogLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf(
			"log.level %q is invalid, must be one of: debug, info, warn, error, fatal",
			cfg.Log.Level,
		))
	}

	if !validLogFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Sprintf(
			"log.format %q is invalid, must be one of: text, json, logfmt",
			cfg.Log.Format,
		))
	}

	if cfg.Events.Enabled && strings.TrimSpace(cfg.Events.Path) == "" {
		errs = append(errs, "events.path must not be empty when events are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
