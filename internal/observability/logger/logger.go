// Package logger constructs the application zap logger.
package logger

import (
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("logger",
	fx.Provide(New),
)

// New builds the process-wide logger. Production gets JSON output,
// everything else the development console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
