package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Backend names accepted by Config.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config selects and configures a logging backend.
type Config struct {
	Backend string `yaml:"backend"`
	Level   string `yaml:"level"`
	JSON    bool   `yaml:"json"`
	Source  bool   `yaml:"source"`

	// Output is used by the slog backend only. Defaults to stdout.
	Output io.Writer `yaml:"-"`
}

// DefaultConfig returns text slog at info level.
func DefaultConfig() Config {
	return Config{Backend: BackendSlog, Level: "info"}
}

// New builds a Logger from cfg.
func New(cfg Config) (Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Backend) {
	case "", BackendSlog:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		opts := []SlogOption{WithLevel(level), WithOutput(out)}
		if cfg.JSON {
			opts = append(opts, WithJSON())
		}
		if cfg.Source {
			opts = append(opts, WithSource())
		}
		return NewSlogLogger(opts...), nil

	case BackendZap:
		zcfg := zap.NewProductionConfig()
		if !cfg.JSON {
			zcfg = zap.NewDevelopmentConfig()
		}
		zcfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
		zcfg.DisableCaller = !cfg.Source
		z, err := zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build zap logger: %w", err)
		}
		return NewZapLogger(z), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
