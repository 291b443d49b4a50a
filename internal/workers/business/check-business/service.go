// Package checkbusiness looks a business up across the geo providers and
// merges the per-provider results.
package checkbusiness

import (
	"context"
	"fmt"
	"time"

	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/observability"
	"business-lookup/internal/models"
	"business-lookup/internal/providers"
	"business-lookup/internal/results"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const TaskType = "check-business"

type ServiceDependencies struct {
	// Google fills the "google" slot, Yelp "yelp" and POI "bing".
	Google  providers.Adapter
	Yelp    providers.Adapter
	POI     providers.Adapter
	Results *results.Logger
	Tracer  trace.Tracer
	Logger  logger.Logger
	Now     func() time.Time
}

type Service struct {
	google  providers.Adapter
	yelp    providers.Adapter
	poi     providers.Adapter
	results *results.Logger
	tracer  trace.Tracer
	logger  logger.Logger
	now     func() time.Time
}

func NewService(deps ServiceDependencies) *Service {
	s := &Service{
		google:  deps.Google,
		yelp:    deps.Yelp,
		poi:     deps.POI,
		results: deps.Results,
		tracer:  deps.Tracer,
		logger:  deps.Logger,
		now:     deps.Now,
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer()
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Aggregate queries every provider concurrently and waits for all of them.
// It never fails: each slot holds that provider's own outcome.
func (s *Service) Aggregate(ctx context.Context, q models.Query) *models.AggregateResponse {
	ctx, span := s.tracer.Start(ctx, "aggregate", trace.WithAttributes(
		attribute.String("query.name", q.Name),
		attribute.String("query.location", q.Location),
	))
	defer span.End()

	resp := models.NewAggregateResponse(q, s.now())

	g, _ := errgroup.WithContext(ctx)
	s.lookup(ctx, g, s.google, q, &resp.Google)
	s.lookup(ctx, g, s.yelp, q, &resp.Yelp)
	s.lookup(ctx, g, s.poi, q, &resp.Bing)
	_ = g.Wait()

	return resp
}

// lookup writes only to slot, so the goroutines share no state.
func (s *Service) lookup(ctx context.Context, g *errgroup.Group, a providers.Adapter, q models.Query, slot *models.ProviderResult) {
	if a == nil {
		return
	}
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("provider lookup panicked", map[string]interface{}{
					"provider": a.Name(),
					"panic":    fmt.Sprint(r),
				})
				*slot = models.Failed(fmt.Sprintf("internal error: %v", r))
			}
		}()
		*slot = providers.Lookup(ctx, a, q, s.tracer, s.logger)
		return nil
	})
}

// Execute aggregates and hands the response to the result logger.
func (s *Service) Execute(ctx context.Context, q models.Query) *models.AggregateResponse {
	resp := s.Aggregate(ctx, q)

	s.logger.Info("business check completed", map[string]interface{}{
		"name":     q.Name,
		"location": q.Location,
		"google":   outcome(resp.Google),
		"yelp":     outcome(resp.Yelp),
		"bing":     outcome(resp.Bing),
	})

	s.results.Append(ctx, resp)
	return resp
}

func outcome(r models.ProviderResult) string {
	switch {
	case r.Error != nil:
		return "error"
	case r.Found:
		return fmt.Sprintf("found(%d)", len(r.Businesses))
	default:
		return "not_found"
	}
}
