package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger atomic.Pointer[zerolog.Logger]
	fallbackOnce  sync.Once
)

// Init initializes the global logger. Pretty output is meant for local runs.
func Init(level string, pretty bool) {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.SetGlobalLevel(parseLevel(level))

	w := io.Writer(os.Stdout)
	if pretty {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	l := New(w)
	defaultLogger.Store(&l)
}

// New builds a logger with the fields every component shares.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the default logger. Before Init it falls back to JSON on
// stdout; concurrent first calls build that fallback once.
func Get() zerolog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return *l
	}
	fallbackOnce.Do(func() {
		l := New(os.Stdout)
		defaultLogger.CompareAndSwap(nil, &l)
	})
	return *defaultLogger.Load()
}
