package monitoring

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name registered with OTel.
const tracerName = "mpi-operator"

// Tracer is the package-level OTel tracer for the sync hook.
// It returns a noop tracer when no TracerProvider is registered.
var Tracer = otel.Tracer(tracerName)

// InitTracing installs a global TracerProvider exporting over OTLP/HTTP. When
// OTEL_EXPORTER_OTLP_ENDPOINT is unset, tracing stays a noop and the returned
// shutdown function does nothing. The exporter reads the remaining OTEL_*
// variables itself.
func InitTracing(ctx context.Context, serviceName, version string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noop, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	Tracer = tp.Tracer(tracerName)

	return tp.Shutdown, nil
}

// StartSyncSpan starts a new span for one sync call, annotated with the MPIJob
// name and namespace. Callers must call span.End() when the call completes.
func StartSyncSpan(ctx context.Context, name, namespace string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "MPIJob.Sync",
		trace.WithAttributes(
			attribute.String("k8s.resource.name", name),
			attribute.String("k8s.namespace", namespace),
			attribute.String("k8s.resource.kind", "MPIJob"),
		),
	)
}

// StartChildSpan starts a child span under the current trace context.
// Use this for the stages of a sync call (e.g., AggregateStatus, BuildChildren).
func StartChildSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, spanName)
}

// RecordSpanError records an error on a span and sets the span status to Error.
// If err is nil, this is a no-op.
func RecordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EnrichLogger adds the trace and span IDs of the span in ctx to logger, so
// log lines can be joined with traces. Without a valid span the logger is
// returned unchanged.
func EnrichLogger(ctx context.Context, logger logr.Logger) logr.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.WithValues("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
}
