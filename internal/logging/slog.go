package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// NewConsoleLogger builds a logger writing to f: human-readable text when f is
// an interactive terminal, JSON lines otherwise.
func NewConsoleLogger(f *os.File, level slog.Level) *SlogLogger {
	return newLoggerFor(f, int(f.Fd()), level)
}

func newLoggerFor(w io.Writer, fd int, level slog.Level) *SlogLogger {
	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(fd) {
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts)))
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
