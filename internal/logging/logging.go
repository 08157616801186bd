// Package logging builds the zap logger used by the serbench commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger writing to stdout. format is "json" (production encoder) or
// "console" (development encoder); level is any zapcore level name.
func New(level, format string) (*zap.Logger, error) {
	config, err := newConfig(level, format)
	if err != nil {
		return nil, err
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}

// NewWriter builds a logger like New that writes to w instead of stdout.
func NewWriter(level, format string, w io.Writer) (*zap.Logger, error) {
	config, err := newConfig(level, format)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if config.Encoding == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(config.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), config.Level)

	return zap.New(core, zap.AddCaller()), nil
}

func newConfig(level, format string) (zap.Config, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zap.Config{}, err
	}

	var config zap.Config
	switch strings.ToLower(format) {
	case FormatJSON, "":
		config = zap.NewProductionConfig()
	case FormatConsole:
		config = zap.NewDevelopmentConfig()
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", format)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	return config, nil
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return lvl, nil
}
