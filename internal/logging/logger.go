// Package logging builds the process-wide zap logger: a console stream plus
// an append-only local log file.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogEncoding = "LOG_ENCODING"
	EnvLogFile     = "AAIN_LOG_FILE"

	defaultLogFile = "aain_system.log"
)

// New builds the logger. Level comes from LOG_LEVEL (default info), encoding
// from LOG_ENCODING (json or console, default json), and the file sink from
// AAIN_LOG_FILE.
func New() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	encoding := os.Getenv(EnvLogEncoding)
	if encoding != "console" {
		encoding = "json"
	}

	logFile := os.Getenv(EnvLogFile)
	if logFile == "" {
		logFile = defaultLogFile
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = encoding
	cfg.OutputPaths = []string{"stdout", logFile}
	cfg.ErrorOutputPaths = []string{"stderr", logFile}

	return cfg.Build()
}
