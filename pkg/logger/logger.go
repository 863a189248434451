// pkg/logger/logger.go

package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger

	// consoleLevel gates the human-facing stderr sink; fileLevel gates the JSON log file.
	consoleLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	fileLevel    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// L returns the process logger, or nil before initialisation.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger installs l as the process logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// GetLogger returns the process logger, initialising the fallback logger on first use.
func GetLogger() *zap.Logger {
	if l := L(); l != nil {
		return l
	}
	InitFallback()
	return L()
}

// SetLevel changes the console level at runtime. The file sink follows it
// downwards so debug runs are captured on disk too.
func SetLevel(level string) {
	lvl := ParseLogLevel(level)
	consoleLevel.SetLevel(lvl)
	if lvl < zapcore.InfoLevel {
		fileLevel.SetLevel(lvl)
	} else {
		fileLevel.SetLevel(zapcore.InfoLevel)
	}
}

// ConsoleLevel reports the current console level.
func ConsoleLevel() zapcore.Level {
	return consoleLevel.Level()
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	l := L()
	if l == nil {
		return nil
	}
	return l.Sync()
}
