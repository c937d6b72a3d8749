// Package mtrace provides the span-per-usecase tracing helper shared by the
// ledger and the agent. No collector exporter is wired here, so absent an
// SDK TracerProvider registered by bootstrap this degrades to otel's global
// no-op tracer.
package mtrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the named tracer from the globally registered
// TracerProvider (or the no-op provider if bootstrap never registered one).
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Start begins a span named spanName under the named tracer, returning the
// derived context the caller should thread through the rest of the call.
func Start(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return Tracer(tracerName).Start(ctx, spanName)
}
