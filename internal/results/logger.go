// Package results persists aggregate responses to the configured sinks.
package results

import (
	"context"

	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/metrics"
	"business-lookup/internal/models"
)

// Sink stores one record. Implementations do not retry.
type Sink interface {
	Name() string
	Append(ctx context.Context, record *models.AggregateResponse) error
}

// Logger is the result logger: it appends each record to every sink and
// never reports a failure to the caller.
type Logger struct {
	sinks  []Sink
	logger logger.Logger
}

func NewLogger(log logger.Logger, sinks ...Sink) *Logger {
	return &Logger{
		sinks:  sinks,
		logger: log.With(map[string]interface{}{"component": "results"}),
	}
}

// Enabled reports whether any sink is configured.
func (l *Logger) Enabled() bool {
	return l != nil && len(l.sinks) > 0
}

func (l *Logger) Append(ctx context.Context, record *models.AggregateResponse) {
	if !l.Enabled() || record == nil {
		return
	}
	for _, sink := range l.sinks {
		err := sink.Append(ctx, record)
		metrics.ResultAppends.WithLabelValues(sink.Name(), metrics.Status(err)).Inc()
		if err != nil {
			stdErr := apperrors.Normalize(err)
			if stdErr.Code != apperrors.ErrCodeResultWriteFailed {
				stdErr = apperrors.NewResultWriteFailedError(sink.Name(), err)
			}
			l.logger.Error("failed to append result", map[string]interface{}{
				"sink":      sink.Name(),
				"errorCode": string(stdErr.Code),
				"error":     stdErr.Details,
			})
		}
	}
}
