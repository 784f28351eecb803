package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	// FormatText selects the human-readable key=value output.
	FormatText = "text"
	// FormatJSON selects one JSON object per line.
	FormatJSON = "json"
)

var (
	initOnce sync.Once
	levelVar slog.LevelVar

	// L is the base logger shared by all components.
	L *slog.Logger

	// TG logs Telegram transport events.
	TG *slog.Logger
	// ENG logs lifecycle engine transitions.
	ENG *slog.Logger
	// DB logs database connectivity events.
	DB *slog.Logger
	// MIG logs schema migration events.
	MIG *slog.Logger
	// ARC logs order archive writes.
	ARC *slog.Logger
)

func init() {
	// A usable default until Init runs, so tests and early startup can log.
	wire(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &levelVar})))
}

// Options control the global logger built by Init.
type Options struct {
	Level  string
	Format string
}

// Init configures the global structured logger. It may be called only once;
// later calls are ignored.
func Init(opts Options) {
	initOnce.Do(func() {
		levelVar.Set(ParseLevel(opts.Level))

		var handler slog.Handler
		ho := &slog.HandlerOptions{Level: &levelVar}
		switch strings.ToLower(strings.TrimSpace(opts.Format)) {
		case FormatJSON:
			handler = slog.NewJSONHandler(os.Stdout, ho)
		default:
			handler = slog.NewTextHandler(os.Stdout, ho)
		}

		logger := slog.New(handler)
		slog.SetDefault(logger)
		wire(logger)
	})
}

func wire(base *slog.Logger) {
	L = base
	TG = base.With("component", "tg")
	ENG = base.With("component", "engine")
	DB = base.With("component", "db")
	MIG = base.With("component", "db.migrate")
	ARC = base.With("component", "archive")
}

// ParseLevel maps a config level name to a slog.Level, defaulting to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Component returns a logger tagged with the given component name.
func Component(name string) *slog.Logger {
	return L.With("component", name)
}

// Background returns a fresh root context for call sites that have none.
func Background() context.Context {
	return context.Background()
}

// Debug logs an event at debug level for the named component, enriching it
// with request metadata carried in ctx.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an event at info level for the named component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs an event at warn level for the named component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an event at error level for the named component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, component, slog.LevelError, event, attrs...)
}

func logEvent(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	log := FromContext(ctx)
	if component != "" {
		log = log.With("component", component)
	}
	if rid := RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	log.LogAttrs(ctx, level, event, attrs...)
}
