package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "business-lookup"

// Tracer returns the service tracer from the global provider. Nothing is
// exported unless a provider is installed with otel.SetTracerProvider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
