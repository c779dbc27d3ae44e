package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// SlogLogger sends records to a *slog.Logger, adding the fields stored in
// the context.
type SlogLogger struct {
	base *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{base: l}
}

// NewJSONLogger writes one JSON object per record to w. level is one of
// debug, info, warn or error; anything else means info.
func NewJSONLogger(w io.Writer, level string) *SlogLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts)))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.base.Enabled(ctx, level) {
		return
	}
	if attrs := AttrsFromContext(ctx); len(attrs) > 0 {
		args = append(append(make([]any, 0, len(attrs)+len(args)), attrs...), args...)
	}
	s.base.Log(ctx, level, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{base: s.base.With(args...)}
}
