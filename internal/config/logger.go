package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/probeworks/lanscope/pkg/plugin"
)

// NewLogger builds the process logger from the logging section of the
// loaded configuration: "logging.level" (debug, info, warn, error) and
// "logging.format" (json or console).
func NewLogger(cfg plugin.Config) (*zap.Logger, error) {
	level := cfg.GetString("logging.level")
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging.level %q: %w", level, err)
	}

	var zc zap.Config
	switch format := cfg.GetString("logging.format"); format {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging.format %q: want json or console", format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
