// internal/results/redis.go
package results

import (
	"context"
	"encoding/json"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSink pushes each record onto the tail of a list.
type RedisSink struct {
	client redis.Cmdable
	key    string
}

func NewRedisSink(client redis.Cmdable, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Name() string {
	return config.BackendRedis
}

func (s *RedisSink) Append(ctx context.Context, record *models.AggregateResponse) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	return nil
}
