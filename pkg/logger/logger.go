// Package logger builds the zerolog loggers of rifa-admin.
//
// Build the root logger once at startup with New and derive per-component
// children with Component. Request-scoped lines carry the browser context id
// through WithBrowserContext.
//
//	TRACE (-1) → DEBUG (0) → INFO (1) → WARN (2) → ERROR (3)
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FieldService        = "service"
	FieldComponent      = "component"
	FieldBrowserContext = "browser_context"

	defaultService = "rifa-admin"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables console output. Production emits JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is stamped on every line. Defaults to rifa-admin.
	Service string
}

// New builds the root logger and sets the global zerolog level.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	service := opts.Service
	if service == "" {
		service = defaultService
	}

	lvl := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str(FieldService, service).
		Logger()
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}

// WithBrowserContext returns a child logger tagged with the browser context id.
// An empty id leaves the logger untouched.
func WithBrowserContext(l zerolog.Logger, id string) zerolog.Logger {
	if id == "" {
		return l
	}
	return l.With().Str(FieldBrowserContext, id).Logger()
}

// ParseLevel converts a string to a zerolog.Level, info by default.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
