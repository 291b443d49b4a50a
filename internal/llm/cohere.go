// internal/llm/cohere.go
package llm

import (
	"context"
	"time"

	"business-lookup/internal/common/config"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"
)

const (
	CohereProvider = "cohere-chat"
	cohereModel    = "command"
	cohereChatPath = "/v1/chat"
)

type cohereRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type cohereResponse struct {
	Message struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

type CohereClient struct {
	base
}

func NewCohereClient(cfg config.ProviderConfig, timeout time.Duration, log logger.Logger) *CohereClient {
	return &CohereClient{
		base: newBase(CohereProvider, cohereModel, "COHERE_API_KEY", config.DefaultCohereURL, cfg, timeout, log),
	}
}

// Complete sends one chat message. A reply without content is still ok with empty text.
func (c *CohereClient) Complete(ctx context.Context, prompt string) models.LLMResult {
	if !c.configured() {
		return c.notConfigured()
	}

	var resp cohereResponse
	err := c.postJSON(ctx, c.baseURL+cohereChatPath, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, cohereRequest{Model: cohereModel, Message: prompt}, &resp)
	if err != nil {
		return c.fail(err)
	}

	text := ""
	if len(resp.Message.Content) > 0 {
		text = resp.Message.Content[0].Text
	}
	return c.ok(text)
}
