package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (console or json).
	Format string `mapstructure:"format" default:"console"`
	// File is an optional path to duplicate log output into.
	File string `mapstructure:"file" default:""`
	// Append controls whether the log file is appended to instead of truncated.
	Append bool `mapstructure:"append" default:"false"`
}

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	// Set format based on configuration
	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	if cfg.File != "" {
		// zap file sinks always append; truncate up front unless appending was asked for
		if !cfg.Append {
			if err := os.Truncate(cfg.File, 0); err != nil && !os.IsNotExist(err) {
				return nil, err
			}
		}
		config.OutputPaths = append(config.OutputPaths, cfg.File)
	}

	return config.Build()
}

// Quiet returns a logger restricted to errors. Used when the produced output
// itself goes to stdout (e.g. checksum printing) and must stay parseable.
func Quiet(cfg *Config) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return l.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel)), nil
}
