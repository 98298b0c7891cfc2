package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wayfarer/internal/config"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

// provideLogger also installs the logger as zap.L() for packages without injection.
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDev() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
