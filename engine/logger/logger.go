// Package logger builds the engine's zap logger from its configuration.
package logger

import (
	"strings"
	"sync"

	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var installOnce sync.Once

// New builds a zap logger writing to stderr.
//
// Parameters:
//   - cfg: the level ("debug", "info", "warn", "error") and encoding ("console" or "json")
//
// Returns:
//   - *zap.Logger: the logger
//   - error: error if the level is unknown or zap fails to build
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoding := cfg.Encoding
	if encoding == "" || encoding == "console" {
		encoding = "console"
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	l, err := zc.Build()
	if err != nil {
		return nil, eris.Wrap(err, "failed to build logger")
	}
	return l, nil
}

// Install builds the logger and makes it the zap global returned by zap.L. Only the first
// call replaces the globals; later calls return the logger they built without installing it.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *zap.Logger: the built logger
//   - error: error if the logger cannot be built
func Install(cfg config.LoggerConfig) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	installOnce.Do(func() { zap.ReplaceGlobals(l) })
	return l, nil
}

// ParseLevel maps a level name to its zap level. An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, eris.Errorf("unknown log level %q", name)
	}
}
