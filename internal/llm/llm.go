// Package llm holds the prompt clients for the hosted language models.
// Every client folds failures into models.LLMResult instead of returning errors.
package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/metrics"
	"business-lookup/internal/models"
)

type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) models.LLMResult
}

// base carries what every provider client shares.
type base struct {
	provider string
	model    string
	envKey   string
	apiKey   string
	baseURL  string
	http     *httpclient.Client
	logger   logger.Logger
}

func newBase(provider, model, envKey, defaultURL string, cfg config.ProviderConfig, timeout time.Duration, log logger.Logger) base {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultURL
	}
	return base{
		provider: provider,
		model:    model,
		envKey:   envKey,
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		http:     httpclient.NewClient(provider, timeout),
		logger:   log.With(map[string]interface{}{"provider": provider}),
	}
}

func (b *base) Name() string {
	return b.provider
}

func (b *base) configured() bool {
	return b.apiKey != ""
}

func (b *base) postJSON(ctx context.Context, url string, headers map[string]string, body, out interface{}) error {
	req, err := httpclient.NewJSONRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return apperrors.NewLLMRequestFailedError(b.provider, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return b.http.DoJSON(req, out)
}

func (b *base) ok(text string) models.LLMResult {
	metrics.LLMRequests.WithLabelValues(b.provider, "ok").Inc()
	return models.LLMResult{
		OK:       true,
		Provider: b.provider,
		Model:    b.model,
		Text:     text,
	}
}

func (b *base) fail(err error) models.LLMResult {
	metrics.LLMRequests.WithLabelValues(b.provider, "error").Inc()
	b.logger.Warn("llm request failed", map[string]interface{}{
		"error": err.Error(),
	})
	return models.LLMResult{
		OK:       false,
		Provider: b.provider,
		Error:    apperrors.Payload(err),
	}
}

func (b *base) notConfigured() models.LLMResult {
	return b.fail(apperrors.NewLLMNotConfiguredError(b.envKey))
}
