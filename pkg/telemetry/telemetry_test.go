package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledIsNoop(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	shutdown, err := Init("quell-test", false)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, span := Start(context.Background(), "noop")
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid(), "noop provider produces invalid span contexts")
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartNilContext(t *testing.T) {
	//nolint:staticcheck // exercising the nil fallback
	ctx, span := Start(nil, "nil-ctx")
	defer span.End()
	assert.NotNil(t, ctx)
}

func TestMarkerPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.False(t, markerPresent())

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".quell"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".quell", "telemetry_on"), nil, 0o600))
	assert.True(t, markerPresent())
}

func TestTruncateArgs(t *testing.T) {
	assert.Equal(t, "stop ssh", TruncateArgs([]string{"stop", "ssh"}))

	long := TruncateArgs([]string{strings.Repeat("a", 300)})
	assert.Len(t, long, 259)
	assert.True(t, strings.HasSuffix(long, "..."))
}
