// internal/providers/provider.go
package providers

import (
	"context"
	"time"

	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/metrics"
	"business-lookup/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Adapter is one geo-business provider. Search returns the mapped, filtered
// records or an error; Lookup folds that into a ProviderResult.
type Adapter interface {
	Name() string
	Enabled() bool
	Search(ctx context.Context, q models.Query) ([]models.BusinessRecord, error)
}

// Lookup runs one adapter and never fails. A disabled adapter is not
// called and yields NotFound without an error field.
func Lookup(ctx context.Context, a Adapter, q models.Query, tracer trace.Tracer, log logger.Logger) models.ProviderResult {
	name := a.Name()
	if !a.Enabled() {
		metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeSkipped).Inc()
		return models.NotFound()
	}

	ctx, span := tracer.Start(ctx, "provider."+name, trace.WithAttributes(
		attribute.String("provider", name),
		attribute.String("query.name", q.Name),
		attribute.String("query.location", q.Location),
	))
	defer span.End()

	start := time.Now()
	records, err := a.Search(ctx, q)
	metrics.ProviderRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("provider lookup failed", map[string]interface{}{
			"provider": name,
			"error":    err.Error(),
		})
		return models.Failed(apperrors.Payload(err))
	}

	result := models.Found(records)
	outcome := metrics.OutcomeNotFound
	if result.Found {
		outcome = metrics.OutcomeFound
	}
	metrics.ProviderRequests.WithLabelValues(name, outcome).Inc()
	span.SetAttributes(attribute.Int("businesses", len(result.Businesses)))

	return result
}
