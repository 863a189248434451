/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger returns a console-only logger on stderr.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback installs the console-only logger as the global logger.
func InitFallback() {
	install(NewFallbackLogger())
}

// InitializeWithFallback builds the console + JSON file logger. When no log
// path is writable it degrades to console only.
func InitializeWithFallback() {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		SetLevel(lvl)
	}

	path, writer, err := FindWritableLogPath(PlatformLogPaths())
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		InitFallback()
		return
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(DefaultJSONEncoderConfig()), writer, fileLevel),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	install(l)
	l.Info("Logger initialized",
		zap.String("log_level", consoleLevel.String()),
		zap.String("log_path", path),
	)
}

// install replaces the zap and otelzap globals so both zap.L() and otelzap.Ctx(ctx) see l.
func install(l *zap.Logger) {
	SetLogger(l)
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l, otelzap.WithMinLevel(zapcore.DebugLevel)))
}
