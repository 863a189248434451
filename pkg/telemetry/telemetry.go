// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc flushes and closes the exporter.
type ShutdownFunc func(context.Context) error

var tracer trace.Tracer = noop.NewTracerProvider().Tracer(shared.AppName)

// Init configures OpenTelemetry; call this once per process. Spans are only
// exported when force is set or the marker file ~/.quell/telemetry_on exists.
func Init(service string, force bool) (ShutdownFunc, error) {
	if !force && !markerPresent() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return func(context.Context) error { return nil }, nil
	}

	file, err := openTelemetryFile()
	if err != nil {
		return nil, err
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		_ = file.Close()
		return nil, cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", service),
			attribute.String("service.version", shared.Version),
			attribute.String("host.name", hostname()),
		)),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return err
	}, nil
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// TruncateArgs joins args for a span attribute, capping the length.
func TruncateArgs(args []string) string {
	full := strings.Join(args, " ")
	if len(full) > 256 {
		return full[:256] + "..."
	}
	return full
}

func openTelemetryFile() (*os.File, error) {
	dirs := []string{shared.QuellLogDir}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+shared.AppName, "telemetry"))
	}

	var lastErr error
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, shared.DirPermStandard); err != nil {
			lastErr = err
			continue
		}
		f, err := os.OpenFile(filepath.Join(dir, shared.TelemetryFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, shared.FilePermStandard)
		if err != nil {
			lastErr = err
			continue
		}
		return f, nil
	}
	return nil, cerr.Wrap(lastErr, "failed to open telemetry file")
}

func markerPresent() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(home, "."+shared.AppName, shared.TelemetryMarker))
	return err == nil
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
