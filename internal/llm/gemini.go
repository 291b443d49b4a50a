// internal/llm/gemini.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"
)

const (
	GeminiProvider = "gemini"
	geminiModel    = "gemini-2.5-flash"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type GeminiClient struct {
	base
}

func NewGeminiClient(cfg config.ProviderConfig, timeout time.Duration, log logger.Logger) *GeminiClient {
	return &GeminiClient{
		base: newBase(GeminiProvider, geminiModel, "GEMINI_API_KEY", config.DefaultGeminiURL, cfg, timeout, log),
	}
}

// Complete reads the body on every status: Gemini reports failures as
// {"error":{"message":...}} and that message is surfaced as-is.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) models.LLMResult {
	if !c.configured() {
		return c.notConfigured()
	}

	body := generateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: fmt.Sprintf("%s\n\nUser query:\n\"%s\"", locationSearchPrompt, prompt)}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopP:            0.8,
			MaxOutputTokens: 1000,
		},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, geminiModel, url.QueryEscape(c.apiKey))
	req, err := httpclient.NewJSONRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return c.fail(apperrors.NewLLMRequestFailedError(c.provider, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(apperrors.NewLLMRequestFailedError(c.provider, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(apperrors.NewLLMRequestFailedError(c.provider, err))
	}

	var data generateResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return c.fail(apperrors.NewLLMRequestFailedError(c.provider, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || len(data.Candidates) == 0 {
		msg := "Gemini API failed"
		if data.Error != nil && data.Error.Message != "" {
			msg = data.Error.Message
		}
		return c.fail(apperrors.NewLLMEmptyResponseError(c.provider, msg))
	}

	text := ""
	if parts := data.Candidates[0].Content.Parts; len(parts) > 0 {
		text = parts[0].Text
	}
	return c.ok(text)
}
