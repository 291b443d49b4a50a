package queryllm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/metrics"
	"business-lookup/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Handler struct {
	config  *Config
	service *Service
	logger  logger.Logger
	errors  *apperrors.ErrorHandler
}

func NewHandler(config *Config, service *Service, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:  config,
		service: service,
		logger:  log,
		errors:  apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, job.Variables)
	if err != nil {
		code := apperrors.Normalize(err).Code
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

// Execute parses job variables and runs the prompt. An LLM failure is part
// of the result; only bad variables return an error.
func (h *Handler) Execute(ctx context.Context, variables string) (*models.LLMResult, error) {
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err))
	}
	if input.Prompt == "" {
		return nil, apperrors.NewInvalidRequestError("prompt required")
	}
	provider := input.Provider
	if provider == "" {
		provider = h.config.DefaultProvider
	}

	result, err := h.service.Complete(ctx, provider, input.Prompt)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
