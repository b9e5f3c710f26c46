package logger

import (
	"go.uber.org/zap"
)

// New создает логгер с заданным текстовым уровнем логирования (debug, info, warn, error...)
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true

	return cfg.Build()
}
