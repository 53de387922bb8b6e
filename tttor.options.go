package tttor

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	macroPrefix string
	logger      *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		macroPrefix: DefaultMacroPrefix,
		logger:      nil,
	}
}

// WithMacroPrefix sets the slug prefix that marks macro-definition templates.
// Empty values are ignored.
// Default: "macro-"
func WithMacroPrefix(prefix string) Option {
	return func(c *engineConfig) {
		if prefix != "" {
			c.macroPrefix = prefix
		}
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
