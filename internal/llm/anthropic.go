// internal/llm/anthropic.go
package llm

import (
	"context"
	"strings"
	"time"

	"business-lookup/internal/common/config"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"
)

const (
	AnthropicProvider = "anthropic"
	anthropicModel    = "claude-3-haiku-20240307"
	anthropicVersion  = "2023-06-01"
	anthropicPath     = "/v1/messages"
	anthropicMaxTok   = 400
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type AnthropicClient struct {
	base
}

func NewAnthropicClient(cfg config.ProviderConfig, timeout time.Duration, log logger.Logger) *AnthropicClient {
	return &AnthropicClient{
		// reported model name drops the date suffix
		base: newBase(AnthropicProvider, "claude-3-haiku", "ANTHROPIC_API_KEY", config.DefaultAnthropicURL, cfg, timeout, log),
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) models.LLMResult {
	if !c.configured() {
		return c.notConfigured()
	}

	body := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: anthropicMaxTok,
		System:    localGuidePrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	var resp anthropicResponse
	err := c.postJSON(ctx, c.baseURL+anthropicPath, map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}, body, &resp)
	if err != nil {
		return c.fail(err)
	}

	parts := make([]string, 0, len(resp.Content))
	for _, block := range resp.Content {
		parts = append(parts, block.Text)
	}
	return c.ok(strings.TrimSpace(strings.Join(parts, "\n")))
}
