package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Load builds the startup configuration: defaults, then the optional
// document named by CONFIG_PATH, then environment overrides. A missing
// CONFIG_PATH is not an error; a named but unreadable or invalid document is.
func Load(logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfigPath); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		loaded, err := FromMap(v.AllSettings())
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = loaded
		logger.Info("Configuration file loaded", zap.String("path", path))
	}

	// Env wins over the file for the project identifier.
	if id := os.Getenv(EnvProjectID); id != "" {
		cfg.ProjectID = id
	}

	return cfg, nil
}
