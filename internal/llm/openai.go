// internal/llm/openai.go
package llm

import (
	"context"
	"time"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"
)

const (
	OpenAIProvider = "openai"
	openAIModel    = "gpt-4o-mini"
	openAIPath     = "/v1/chat/completions"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type OpenAIClient struct {
	base
}

func NewOpenAIClient(cfg config.ProviderConfig, timeout time.Duration, log logger.Logger) *OpenAIClient {
	return &OpenAIClient{
		base: newBase(OpenAIProvider, openAIModel, "OPENAI_API_KEY", config.DefaultOpenAIURL, cfg, timeout, log),
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) models.LLMResult {
	if !c.configured() {
		return c.notConfigured()
	}

	body := chatCompletionRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: placeLookupPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	}

	var resp chatCompletionResponse
	err := c.postJSON(ctx, c.baseURL+openAIPath, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, body, &resp)
	if err != nil {
		return c.fail(err)
	}

	if len(resp.Choices) == 0 {
		return c.fail(apperrors.NewLLMEmptyResponseError(c.provider, "openai returned no choices"))
	}
	return c.ok(resp.Choices[0].Message.Content)
}
