/* pkg/logger/paths.go */

package logger

import (
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/xdg"
)

// PlatformLogPaths returns log paths in order of priority.
func PlatformLogPaths() []string {
	paths := []string{shared.QuellLogs}
	if p := xdg.XDGStatePath(shared.AppName, shared.AppName+".log"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, shared.QuellLogsPWD)
}
