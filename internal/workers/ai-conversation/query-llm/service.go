// Package queryllm answers free-text place questions with the hosted
// language models.
package queryllm

import (
	"context"
	"strings"
	"time"

	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/llm"
	"business-lookup/internal/models"
	"business-lookup/internal/results"
)

const TaskType = "query-llm"

type ServiceDependencies struct {
	Cohere    llm.Client
	Anthropic llm.Client
	Gemini    llm.Client
	OpenAI    llm.Client
	// Snapshots receives every /query-llms response. Nil skips the write.
	Snapshots *results.SnapshotWriter
	Logger    logger.Logger
	Now       func() time.Time
}

type Service struct {
	clients   map[string]llm.Client
	cohere    llm.Client
	anthropic llm.Client
	gemini    llm.Client
	openai    llm.Client
	snapshots *results.SnapshotWriter
	logger    logger.Logger
	now       func() time.Time
}

func NewService(deps ServiceDependencies) *Service {
	s := &Service{
		clients:   make(map[string]llm.Client),
		cohere:    deps.Cohere,
		anthropic: deps.Anthropic,
		gemini:    deps.Gemini,
		openai:    deps.OpenAI,
		snapshots: deps.Snapshots,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.register(deps.Cohere, "cohere")
	s.register(deps.Anthropic)
	s.register(deps.Gemini)
	s.register(deps.OpenAI)
	return s
}

func (s *Service) register(c llm.Client, aliases ...string) {
	if c == nil {
		return
	}
	s.clients[c.Name()] = c
	for _, a := range aliases {
		s.clients[a] = c
	}
}

// Client looks a provider up by name, case-insensitively.
func (s *Service) Client(provider string) (llm.Client, bool) {
	c, ok := s.clients[strings.ToLower(strings.TrimSpace(provider))]
	return c, ok
}

// Complete sends prompt to the named provider.
func (s *Service) Complete(ctx context.Context, provider, prompt string) (models.LLMResult, error) {
	c, ok := s.Client(provider)
	if !ok {
		return models.LLMResult{}, apperrors.NewInvalidRequestError("unknown llm provider: " + provider)
	}
	result := c.Complete(ctx, prompt)
	s.logger.Info("llm query completed", map[string]interface{}{
		"provider": c.Name(),
		"ok":       result.OK,
	})
	return result, nil
}

// QueryCombined runs the Cohere query and stores a snapshot of the response.
// Only a failed snapshot write is returned as an error.
func (s *Service) QueryCombined(ctx context.Context, prompt string) (*CombinedResponse, error) {
	result := s.single(ctx, s.cohere, llm.CohereProvider, prompt)

	out := &CombinedResponse{
		Prompt:    prompt,
		CheckedAt: s.now().UTC(),
		Results:   []models.LLMResult{result},
	}
	if result.OK {
		out.CombinedSummary = result.Text
	}

	if s.snapshots != nil {
		path, err := s.snapshots.Write(out, out.CheckedAt)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("llm snapshot written", map[string]interface{}{"path": path})
	}
	return out, nil
}

func (s *Service) Anthropic(ctx context.Context, prompt string) *SingleResponse {
	return &SingleResponse{
		Prompt:    prompt,
		CheckedAt: s.now().UTC(),
		Result:    s.single(ctx, s.anthropic, llm.AnthropicProvider, prompt),
	}
}

func (s *Service) Gemini(ctx context.Context, prompt string) models.LLMResult {
	return s.single(ctx, s.gemini, llm.GeminiProvider, prompt)
}

func (s *Service) OpenAI(ctx context.Context, prompt string) models.LLMResult {
	return s.single(ctx, s.openai, llm.OpenAIProvider, prompt)
}

func (s *Service) single(ctx context.Context, c llm.Client, provider, prompt string) models.LLMResult {
	if c == nil {
		return models.LLMResult{Provider: provider, Error: provider + " client not configured"}
	}
	result := c.Complete(ctx, prompt)
	s.logger.Info("llm query completed", map[string]interface{}{
		"provider": provider,
		"ok":       result.OK,
	})
	return result
}
