// Package logging builds the zap loggers used for walk diagnostics.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Rotation configures the optional log file.
type Rotation struct {
	MaxSize    int  // Megabytes before the file is rotated
	MaxBackups int  // Rotated files to keep
	MaxAge     int  // Days to keep rotated files
	Compress   bool // Gzip rotated files
}

// DefaultRotation is used when a log file is requested without explicit
// rotation settings.
var DefaultRotation = Rotation{MaxSize: 10, MaxBackups: 3, MaxAge: 28}

// Options configures New.
type Options struct {
	Level    LogLevel
	Format   string // "console" (default) or "json"
	File     string // Optional log file, written in addition to stderr
	Rotation Rotation
}

// ParseFormat validates a log format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", "console", "text":
		return "console", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("invalid log format: %s", s)
	}
}

// New creates a zap logger with the specified level. Diagnostics always go
// to stderr; stdout carries only walk output.
func New(opts Options) (*zap.Logger, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	switch opts.Level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	config.Encoding = format
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = opts.Level != LogLevelDebug
	if format == "console" {
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if opts.Level == LogLevelDebug && isTerminal(os.Stderr) {
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	if opts.File != "" {
		rot := opts.Rotation
		if rot == (Rotation{}) {
			rot = DefaultRotation
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    rot.MaxSize,
				MaxBackups: rot.MaxBackups,
				MaxAge:     rot.MaxAge,
				Compress:   rot.Compress,
			}),
			config.Level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}
	return logger, nil
}

// LevelFromFlags maps the verbose and silent switches onto a LogLevel.
// Verbose wins when both are set.
func LevelFromFlags(verbose, silent bool) LogLevel {
	switch {
	case verbose:
		return LogLevelDebug
	case silent:
		return LogLevelError
	default:
		return LogLevelWarn
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
