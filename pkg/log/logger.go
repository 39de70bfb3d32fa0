// Package log provides a thin zerolog-backed structured logging layer
// for the GLRM core. Components obtain named loggers and attach
// structured fields; output defaults to stderr and can be redirected
// for tests.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetOutput redirects all loggers created after the call to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Output(w)
}

// SetLevel sets the global minimum level for loggers created after the call.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(level)
}

// GetLogger returns the root logger.
func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}

// ErrObject attaches a structured error to an event when the error
// implements zerolog.LogObjectMarshaler, falling back to the plain
// error field otherwise.
func ErrObject(e *zerolog.Event, err error) *zerolog.Event {
	if m, ok := err.(zerolog.LogObjectMarshaler); ok {
		return e.Object("error", m)
	}
	return e.Err(err)
}
