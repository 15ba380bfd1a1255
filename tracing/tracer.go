package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Provider owns the process-wide tracer provider.
type Provider struct {
	tp *trace.TracerProvider
}

// NewProvider installs a tracer provider for serviceName as the global one,
// so otel.Tracer and otelgin pick it up.
func NewProvider(serviceName string, exporter trace.SpanExporter) *Provider {
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{}),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp}
}

// NewWriterExporter exports spans as JSON to w.
func NewWriterExporter(w io.Writer) (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(w))
}

func (p *Provider) Shutdown(ctx context.Context) error {
	_ = p.tp.ForceFlush(ctx)

	return p.tp.Shutdown(ctx)
}
