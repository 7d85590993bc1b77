package logging

import (
	"go.uber.org/zap"
)

// AppName is attached to every log line as the "app" field.
const AppName = "dummy-predictor"

// New builds the application logger. format "development" selects the
// human-readable console encoder; anything else gets production JSON.
// An unparseable level falls back to info.
func New(level, format string) (*zap.Logger, error) {
	var config zap.Config
	if format == "development" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = map[string]any{
		"app": AppName,
	}
	config.Level = ParseLevel(level)

	return config.Build()
}

// ParseLevel maps a level name to an atomic level, defaulting to info.
func ParseLevel(level string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(level); err == nil && level != "" {
		return atom
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
