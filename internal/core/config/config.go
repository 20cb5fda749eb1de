// Package config handles configuration loading and validation for
// fleetcheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marinops/fleetcheck/internal/core/catalog"
)

// Config holds the application configuration.
type Config struct {
	Telegram TelegramConfig   `yaml:"telegram"`
	Report   ReportConfig     `yaml:"report"`
	Catalog  *catalog.Catalog `yaml:"catalog"` // nil selects the built-in catalog
	DataDir  string           `yaml:"-"`       // set by caller, not from config file
}

// TelegramConfig holds transport settings. The token can also come from the
// FLEETCHECK_TOKEN environment variable, which takes precedence.
type TelegramConfig struct {
	Token       string `yaml:"token"`
	PollTimeout int    `yaml:"poll_timeout"` // seconds
}

// ReportConfig holds document rendering settings.
type ReportConfig struct {
	// FontPath points to a UTF-8 TTF used for all document text. The font
	// is loaded per render; a missing file fails document generation, not
	// startup.
	FontPath string `yaml:"font_path"`
	// ImageWidthMM is the fixed display width for embedded photos.
	ImageWidthMM float64 `yaml:"image_width_mm"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Telegram: TelegramConfig{
			PollTimeout: 30,
		},
		Report: ReportConfig{
			FontPath:     "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			ImageWidthMM: 120,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// EffectiveCatalog returns the configured catalog or the built-in default.
func (c *Config) EffectiveCatalog() *catalog.Catalog {
	if c.Catalog != nil {
		return c.Catalog
	}
	return catalog.Default()
}

// AssetsDir is where downloaded photos are cached.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.DataDir, "photos")
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = def.Telegram.PollTimeout
	}
	if c.Report.FontPath == "" {
		c.Report.FontPath = def.Report.FontPath
	}
	if c.Report.ImageWidthMM == 0 {
		c.Report.ImageWidthMM = def.Report.ImageWidthMM
	}
}
