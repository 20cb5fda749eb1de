package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration. The bot
// token is deliberately not required here: commands that don't talk to
// Telegram (catalog, journal, assets) run without one.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateReport(),
		c.validateCatalog(),
	)
}

func (c *Config) validateReport() error {
	if c.Report.ImageWidthMM <= 0 {
		return criterio.NewFieldErrors("report.image_width_mm",
			fmt.Errorf("must be positive, got %v", c.Report.ImageWidthMM))
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog == nil {
		return nil
	}
	if err := c.Catalog.Validate(); err != nil {
		return criterio.NewFieldErrors("catalog", err)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't
// exist yet.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
