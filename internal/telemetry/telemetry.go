// Package telemetry wires the OpenTelemetry tracer provider used by
// internal/verify. The default is a no-op provider; BEANS_OTEL_STDOUT=1
// switches to a stdout trace exporter for local inspection. This is observability
// only — it never changes verify's pass/fail outcome.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Shutdown flushes and releases any provider installed by Setup.
type Shutdown func(context.Context) error

// Setup installs a global tracer provider. Without BEANS_OTEL_STDOUT=1
// this is otel's built-in no-op provider (the default before Setup is
// ever called), so calling Setup is optional for callers that don't care
// about local inspection.
func Setup() (Shutdown, error) {
	if os.Getenv("BEANS_OTEL_STDOUT") != "1" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
