// Package logging builds the zap loggers used across vaultdesk.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Dallionking/vaultdesk/internal/config"
)

// Mode selects the log sink.
type Mode int

const (
	// ModeCLI writes console-encoded lines to stderr.
	ModeCLI Mode = iota
	// ModeTUI writes JSON lines to a rotating file so the alternate screen
	// stays clean.
	ModeTUI
)

// ParseLevel maps a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// New builds a logger for cfg. In ModeTUI, file is the log path, usually
// config.Paths.LogFile.
func New(cfg config.LoggingConfig, mode Mode, file string) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeTUI:
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		sink := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		return NewWithWriter(sink, lvl, true), nil
	default:
		return NewWithWriter(os.Stderr, lvl, false), nil
	}
}

// NewWithWriter builds a logger writing to w. JSON selects the JSON
// encoder, otherwise lines are console encoded.
func NewWithWriter(w io.Writer, lvl zapcore.Level, json bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core)
}
