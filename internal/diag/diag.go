// Package diag hands out leveled loggers for the delivery engine.
package diag

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/pion/logging"
)

// debugEnabled controls whether new loggers emit debug lines.
var debugEnabled atomic.Bool

var (
	factoryMu sync.Mutex
	factory   = &logging.DefaultLoggerFactory{
		Writer:          os.Stderr,
		DefaultLogLevel: logging.LogLevelInfo,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
)

// SetDebug enables/disables verbose engine logs for loggers created afterwards.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if enabled {
		factory.DefaultLogLevel = logging.LogLevelDebug
	} else {
		factory.DefaultLogLevel = logging.LogLevelInfo
	}
}

// Debug reports whether verbose engine logs are enabled.
func Debug() bool {
	return debugEnabled.Load()
}

// Logger returns a leveled logger for scope.
func Logger(scope string) logging.LeveledLogger {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	return factory.NewLogger(scope)
}
