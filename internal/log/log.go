package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable holding the default log level.
const EnvLevel = "SNOWDROP_LOG"

var (
	output       io.Writer = os.Stderr
	currentLevel           = new(slog.LevelVar)
	defaultLogger          = slog.New(NewCustomHandler(output, &slog.HandlerOptions{
		Level: currentLevel,
	}))
)

// CustomHandler is a text handler with a compact timestamp.
type CustomHandler struct {
	slog.Handler
}

func NewCustomHandler(w io.Writer, opts *slog.HandlerOptions) *CustomHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue(a.Value.Time().Format("15:04:05")),
			}
		}
		return a
	}
	return &CustomHandler{
		Handler: slog.NewTextHandler(w, opts),
	}
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.Handler.Handle(ctx, r)
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// SetupFromEnv applies the level named by SNOWDROP_LOG, if any.
func SetupFromEnv() error {
	raw, ok := os.LookupEnv(EnvLevel)
	if !ok {
		return nil
	}
	level, err := ParseLevel(raw)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

// SetOutput redirects log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	output = w
	defaultLogger = slog.New(NewCustomHandler(output, &slog.HandlerOptions{
		Level: currentLevel,
	}))
}

func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
}

func Default() *slog.Logger {
	return defaultLogger
}

func SetLevel(level slog.Level) {
	currentLevel.Set(level)
}

func Level() slog.Level {
	return currentLevel.Level()
}

func Disable() {
	defaultLogger = slog.New(NewCustomHandler(io.Discard, nil))
}

func Enable() {
	SetOutput(output)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
