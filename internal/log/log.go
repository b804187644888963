package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time

	closer io.Closer
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
	}
}

// New returns a logger that writes human-readable records to stderr. If
// dir is non-empty, records are also written as JSON to a rotating
// fontgen.slog file in that directory.
func New(level string, dir string) (*Logger, error) {
	return NewWithWriter(os.Stderr, level, dir)
}

func NewWithWriter(w io.Writer, level string, dir string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var h slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{Start: time.Now()}

	if dir != "" {
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "fontgen.slog"),
			MaxSize:    8, // MB
			MaxBackups: 3,
		}
		l.LogFile = lj.Filename
		l.closer = lj
		h = teeHandler{h, slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: lvl})}
	}
	l.Logger = slog.New(h)

	if bi, ok := debug.ReadBuildInfo(); ok {
		l.Debug("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path))
	}
	return l, nil
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Start:  time.Now(),
	}
}

func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// The logging methods allow a nil *Logger, in which case debug and info
// messages are discarded while errors still go to slog's default logger.

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

// Elapsed is the time since the logger was created, which is the start
// of the run.
func (l *Logger) Elapsed() time.Duration {
	if l == nil {
		return 0
	}
	return time.Since(l.Start)
}

// teeHandler fans records out to a pair of handlers.
type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return t.a.Enabled(ctx, lvl) || t.b.Enabled(ctx, lvl)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if t.a.Enabled(ctx, r.Level) {
		if err := t.a.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if t.b.Enabled(ctx, r.Level) {
		return t.b.Handle(ctx, r)
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{t.a.WithAttrs(attrs), t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{t.a.WithGroup(name), t.b.WithGroup(name)}
}
