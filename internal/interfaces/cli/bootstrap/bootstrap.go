// Package bootstrap holds the start-up steps shared by every CLI command:
// configuration, logging, business timezone and the database connection.
package bootstrap

import (
	"fmt"

	"github.com/assetdesk/assetdesk/internal/infrastructure/config"
	"github.com/assetdesk/assetdesk/internal/infrastructure/database"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// Load reads configuration for the environment and initialises the logger
// and business timezone.
func Load(flags Flags) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(flags.Env), flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Business timezone drives {year}/{month}/{day} in asset number formulas.
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// LoadWithDatabase is Load plus database.Init. Callers defer database.Close.
func LoadWithDatabase(flags Flags) (*config.Config, logger.Interface, error) {
	cfg, log, err := Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

// MapEnvToGinMode translates deployment environment names to gin modes.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
