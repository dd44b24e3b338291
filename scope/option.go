package scope

import (
	"github.com/viant/uniq/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Scope created with New or Child.
type Option func(s *Scope)

// WithName overrides the generated diagnostic name.  The name is used only
// in traces and error messages; identity stays with the scope's token.
func WithName(name string) Option {
	return func(s *Scope) {
		s.name = name
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file
// path. The function is safe to call multiple times – the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Scope) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter. This enables integrations with exporters other than the
// built-in stdout exporter, for example OTLP, Jaeger or Zipkin. The function
// is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Scope) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
