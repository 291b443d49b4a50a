// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails Zeebe jobs with a standardized error payload.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *StandardError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    string(e.Code),
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.Metadata {
		vars[k] = v
	}
	return vars
}

// HandleJobError fails the job without retries. Lookups are never retried,
// the workflow decides what to do next.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)

	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"message":          stdErr.Message,
		"details":          stdErr.Details,
		"workflowInstance": job.ProcessInstanceKey,
	})

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(0).
		ErrorMessage(stdErr.Message)

	varsJSON, marshalErr := json.Marshal(stdErr.ToErrorVariables())
	if marshalErr == nil {
		if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = cmdWithVars.Send(ctx)
			return
		}
	}

	_, _ = cmd.Send(ctx)
}
