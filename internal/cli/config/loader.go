package config

import (
	"fmt"
	"os"

	"github.com/yndnr/snapkeep-go/internal/infra/confloader"
)

// Load builds the configuration from defaults, the config file, SNAPKEEP_*
// environment variables and overrides (highest priority), then verifies it.
//
// When path is empty the default config file is used if it exists. An
// explicit path must exist.
func Load(path string, overrides map[string]any) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		path = ""
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(defaultMap()),
		confloader.WithOverrides(overrides),
	)

	cfg := &Config{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStorePath(cfg.Storage.Engine)
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
