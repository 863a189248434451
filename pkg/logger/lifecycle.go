/* pkg/logger/lifecycle.go */

package logger

import (
	"github.com/google/uuid"
)

// GenerateRunID returns a short 8-char id used to correlate one invocation's log lines.
func GenerateRunID() string {
	return uuid.New().String()[:8]
}
