package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/observability"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                   { return f.name }
func (f fakeChecker) Ping(ctx context.Context) error { return f.err }

type fakeLLM struct{}

func (fakeLLM) QueryLLMs(w http.ResponseWriter, r *http.Request)      { w.Write([]byte("llms")) }
func (fakeLLM) QueryAnthropic(w http.ResponseWriter, r *http.Request) { w.Write([]byte("anthropic")) }
func (fakeLLM) Gemini(w http.ResponseWriter, r *http.Request)         { w.Write([]byte("gemini")) }
func (fakeLLM) OpenAI(w http.ResponseWriter, r *http.Request)         { w.Write([]byte("openai")) }

func createTestRouter(t *testing.T, deps Dependencies) http.Handler {
	t.Helper()
	if deps.Logger == nil {
		deps.Logger = logger.NewTestLogger(t)
	}
	deps.Now = func() time.Time { return fixedNow }
	if deps.CheckBusiness == nil {
		deps.CheckBusiness = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(middleware.GetReqID(r.Context())))
		})
	}
	if deps.LLM == nil {
		deps.LLM = fakeLLM{}
	}
	return NewRouter(deps)
}

func do(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	router := createTestRouter(t, Dependencies{})

	tests := []struct {
		path string
		want string
	}{
		{"/query-llms", "llms"},
		{"/query-anthropic", "anthropic"},
		{"/api/gemini", "gemini"},
		{"/api/openai", "openai"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(router, http.MethodPost, tt.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}

	rec := do(router, http.MethodPost, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestRouter_CORS(t *testing.T) {
	router := createTestRouter(t, Dependencies{})

	rec := do(router, http.MethodOptions, "/check-business", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rec.Body.String())

	rec = do(router, http.MethodPost, "/check-business", nil)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestID(t *testing.T) {
	router := createTestRouter(t, Dependencies{})

	rec := do(router, http.MethodPost, "/check-business", nil)
	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String(), "handler sees the same id")

	rec = do(router, http.MethodPost, "/check-business", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestRouter_RecoversPanics(t *testing.T) {
	router := createTestRouter(t, Dependencies{
		CheckBusiness: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	})

	rec := do(router, http.MethodPost, "/check-business", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	router := createTestRouter(t, Dependencies{})

	rec := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","time":"2024-05-01T10:00:00Z"}`, rec.Body.String())
}

func TestRouter_Ready(t *testing.T) {
	router := createTestRouter(t, Dependencies{
		Checkers: []Checker{fakeChecker{name: "redis"}},
	})
	rec := do(router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","time":"2024-05-01T10:00:00Z"}`, rec.Body.String())

	router = createTestRouter(t, Dependencies{
		Checkers: []Checker{
			fakeChecker{name: "redis"},
			fakeChecker{name: "postgres", err: errors.New("connection refused")},
		},
	})
	rec = do(router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body statusBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body.Status)
	assert.Equal(t, map[string]string{"postgres": "connection refused"}, body.Checks)
}

func TestRouter_Metrics(t *testing.T) {
	router := createTestRouter(t, Dependencies{})

	rec := do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_RecordsRequestMetrics(t *testing.T) {
	reader := metric.NewManualReader()
	obs := observability.NewWithReader("test", reader)
	defer obs.Shutdown()

	router := createTestRouter(t, Dependencies{Observability: obs})
	do(router, http.MethodPost, "/check-business", nil)
	do(router, http.MethodGet, "/health", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var routes []string
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "http.requests" {
			continue
		}
		for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
			route, _ := dp.Attributes.Value("route")
			routes = append(routes, route.AsString())
		}
	}
	assert.ElementsMatch(t, []string{"/check-business", "/health"}, routes)
}
