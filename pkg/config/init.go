package config

import (
	"fmt"

	"github.com/danghamo/zoo/pkg/logger"
)

// Initialize loads configuration and sets up global logger
func Initialize(path string) (*Config, *logger.Logger, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Log.Level),
		Environment: cfg.Log.Environment,
		Encoding:    cfg.Log.Encoding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.SetGlobalLogger(appLogger)

	appLogger.WithFields(map[string]interface{}{
		"store_backend":    cfg.Store.Backend,
		"events_backend":   cfg.Events.Backend,
		"symmetric_mixing": cfg.Admission.SymmetricMixing,
		"log_level":        cfg.Log.Level,
	}).Debug("Configuration and logger initialized")

	return cfg, appLogger, nil
}
