package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SlogLogger implements Logger using log/slog.
type SlogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

type slogConfig struct {
	level     slog.Level
	output    io.Writer
	json      bool
	addSource bool
}

// SlogOption configures a SlogLogger.
type SlogOption func(*slogConfig)

// WithLevel sets the log level.
func WithLevel(level slog.Level) SlogOption {
	return func(c *slogConfig) {
		c.level = level
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) SlogOption {
	return func(c *slogConfig) {
		c.output = w
	}
}

// WithJSON enables JSON output.
func WithJSON() SlogOption {
	return func(c *slogConfig) {
		c.json = true
	}
}

// WithSource adds source location to logs.
func WithSource() SlogOption {
	return func(c *slogConfig) {
		c.addSource = true
	}
}

// NewSlogLogger creates a slog-backed logger writing text to stdout by
// default.
func NewSlogLogger(opts ...SlogOption) *SlogLogger {
	cfg := &slogConfig{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}
	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.output, hopts)
	} else {
		handler = slog.NewTextHandler(cfg.output, hopts)
	}

	return &SlogLogger{
		logger: slog.New(handler),
		ctx:    context.Background(),
	}
}

func (l *SlogLogger) attrs(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func (l *SlogLogger) Debug(msg string, fields ...Field) {
	l.logger.DebugContext(l.ctx, msg, l.attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields ...Field) {
	l.logger.InfoContext(l.ctx, msg, l.attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields ...Field) {
	l.logger.WarnContext(l.ctx, msg, l.attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, fields ...Field) {
	l.logger.ErrorContext(l.ctx, msg, l.attrs(fields)...)
}

// With returns a logger with additional fields.
func (l *SlogLogger) With(fields ...Field) Logger {
	return &SlogLogger{logger: l.logger.With(l.attrs(fields)...), ctx: l.ctx}
}

// WithContext returns a logger bound to ctx.
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	return &SlogLogger{logger: l.logger, ctx: ctx}
}
