// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter opens path for appending, creating the directory with owner-only permissions.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), shared.FilePermOwnerRWX); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, shared.FilePermOwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first candidate that can be opened for writing, and its writer.
func FindWritableLogPath(candidates []string) (string, zapcore.WriteSyncer, error) {
	for _, path := range candidates {
		if w, err := GetLogFileWriter(path); err == nil {
			return path, w, nil
		}
	}
	return "", nil, fmt.Errorf("no writable log path found")
}
