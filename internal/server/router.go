// Package server mounts the HTTP surface on a chi router.
package server

import (
	"context"
	"net/http"
	"time"

	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checker is a backend probed by /ready.
type Checker interface {
	Name() string
	Ping(ctx context.Context) error
}

// LLMHandlers serves the prompt endpoints.
type LLMHandlers interface {
	QueryLLMs(w http.ResponseWriter, r *http.Request)
	QueryAnthropic(w http.ResponseWriter, r *http.Request)
	Gemini(w http.ResponseWriter, r *http.Request)
	OpenAI(w http.ResponseWriter, r *http.Request)
}

type Dependencies struct {
	CheckBusiness http.Handler
	LLM           LLMHandlers
	Checkers      []Checker
	Observability *observability.Observability
	Logger        logger.Logger
	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler
	Now            func() time.Time
}

func NewRouter(deps Dependencies) chi.Router {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = promhttp.Handler()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(cors)
	r.Use(requestID)
	r.Use(instrument(deps.Observability, deps.Logger))
	r.Use(middleware.Recoverer)

	h := &healthHandler{checkers: deps.Checkers, now: deps.Now, logger: deps.Logger}
	r.Get("/health", h.health)
	r.Get("/ready", h.ready)
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	if deps.CheckBusiness != nil {
		r.Method(http.MethodPost, "/check-business", deps.CheckBusiness)
	}
	if deps.LLM != nil {
		r.Post("/query-llms", deps.LLM.QueryLLMs)
		r.Post("/query-anthropic", deps.LLM.QueryAnthropic)
		r.Post("/api/gemini", deps.LLM.Gemini)
		r.Post("/api/openai", deps.LLM.OpenAI)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpclient.WriteError(w, http.StatusNotFound, "not found", "")
	})
	return r
}

type healthHandler struct {
	checkers []Checker
	now      func() time.Time
	logger   logger.Logger
}

type statusBody struct {
	Status string            `json:"status"`
	Time   time.Time         `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *healthHandler) health(w http.ResponseWriter, r *http.Request) {
	httpclient.WriteJSON(w, http.StatusOK, statusBody{Status: "healthy", Time: h.now().UTC()})
}

// ready pings every backend; any failure answers 503.
func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := statusBody{Status: "ready", Time: h.now().UTC()}
	status := http.StatusOK
	for _, c := range h.checkers {
		if err := c.Ping(ctx); err != nil {
			if body.Checks == nil {
				body.Checks = make(map[string]string)
			}
			body.Checks[c.Name()] = err.Error()
			body.Status = "not ready"
			status = http.StatusServiceUnavailable
			h.logger.Warn("readiness check failed", map[string]interface{}{
				"backend": c.Name(),
				"error":   err.Error(),
			})
		}
	}
	httpclient.WriteJSON(w, status, body)
}
