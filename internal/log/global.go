package log

import "sync"

var (
	mu            sync.RWMutex
	defaultLogger *Logger
)

// SetDefaultLogger installs the process-wide logger. The compile
// command calls this once its verbosity flags are resolved so that
// main can report terminal errors through the same handler.
func SetDefaultLogger(logger *Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// DefaultLogger returns the process-wide logger, installing a
// production-configured one on first use if nothing was set.
func DefaultLogger() *Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	l = Default()
	SetDefaultLogger(l)
	return l
}
