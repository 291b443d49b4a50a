// internal/results/elasticsearch.go
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
)

// ElasticsearchSink indexes each record as its own document.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSink(client *elasticsearch.Client, index string) *ElasticsearchSink {
	return &ElasticsearchSink{client: client, index: index}
}

func (s *ElasticsearchSink) Name() string {
	return config.BackendElasticsearch
}

func (s *ElasticsearchSink) Append(ctx context.Context, record *models.AggregateResponse) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(data),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(uuid.NewString()),
	)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return apperrors.NewResultWriteFailedError(s.Name(), fmt.Errorf("index %s: %s: %s", s.index, res.Status(), bytes.TrimSpace(body)))
	}
	return nil
}
