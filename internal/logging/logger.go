// Package logging wires zerolog for the newtab binaries.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional rotating log file.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	WriteToStderr bool
}

const logFileName = "newtab.log"

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, formatWriter(cfg, os.Stderr))
}

func newWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

func formatWriter(cfg Config, out io.Writer) io.Writer {
	if cfg.Format == "console" {
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}
	return out
}

// NewWithFile creates a logger that also writes JSON lines to a rotating file.
// The returned cleanup closes the file; it is safe to call when no file was opened.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	noop := func() {}

	if !fileCfg.Enabled {
		if !fileCfg.WriteToStderr {
			return zerolog.Nop(), noop, nil
		}
		return New(cfg), noop, nil
	}

	if err := os.MkdirAll(fileCfg.LogDir, 0o750); err != nil {
		return New(cfg), noop, err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(fileCfg.LogDir, logFileName),
		MaxSize:    fileCfg.MaxSizeMB,
		MaxBackups: fileCfg.MaxBackups,
		MaxAge:     fileCfg.MaxAgeDays,
		Compress:   true,
	}

	var w io.Writer = rotator
	if fileCfg.WriteToStderr {
		w = zerolog.MultiLevelWriter(formatWriter(cfg, os.Stderr), rotator)
	}

	cleanup := func() {
		_ = rotator.Close()
	}
	return newWithWriter(cfg, w), cleanup, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFromConfigValues builds a stderr logger from plain config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// NEWTAB_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// NEWTAB_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("NEWTAB_LOG_LEVEL"), os.Getenv("NEWTAB_LOG_FORMAT"))
}
