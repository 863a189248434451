// pkg/execute/helpers.go

package execute

import (
	"context"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

func withTimeout(ctx context.Context, t time.Duration) (context.Context, context.CancelFunc) {
	if t > 0 {
		return context.WithTimeout(ctx, t)
	}
	return context.WithCancel(ctx)
}

// buildCommandString renders the invocation as a bash command line that can be
// pasted back into a shell. Arguments are never run through a shell.
func buildCommandString(command string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{command}, args...) {
		words = append(words, shellQuote(w))
	}
	return strings.Join(words, " ")
}

func shellQuote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only strings with NUL bytes cannot be quoted; log them as given.
		return s
	}
	return q
}
