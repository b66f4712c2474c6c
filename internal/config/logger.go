package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. "debug" selects the development
// logger, any other valid level a production logger at that level.
func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	return cfg.Build()
}
