package results

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSink_Append(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sink := NewRedisSink(client, "business-checks")
	require.NoError(t, sink.Append(context.Background(), createTestRecord("First")))
	require.NoError(t, sink.Append(context.Background(), createTestRecord("Second")))

	items, err := mr.List("business-checks")
	require.NoError(t, err)
	require.Len(t, items, 2)

	var first models.AggregateResponse
	require.NoError(t, json.Unmarshal([]byte(items[0]), &first))
	assert.Equal(t, "First", first.Query.Name)
}

func TestRedisSink_Append_PushesRecordJSON(t *testing.T) {
	client, mock := redismock.NewClientMock()

	record := createTestRecord("Starbucks")
	data, err := json.Marshal(record)
	require.NoError(t, err)
	mock.ExpectRPush("business-checks", data).SetVal(1)

	require.NoError(t, NewRedisSink(client, "business-checks").Append(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSink_Append_CommandError(t *testing.T) {
	client, mock := redismock.NewClientMock()

	record := createTestRecord("x")
	data, err := json.Marshal(record)
	require.NoError(t, err)
	mock.ExpectRPush("business-checks", data).SetErr(fmt.Errorf("READONLY You can't write against a read only replica"))

	err = NewRedisSink(client, "business-checks").Append(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, apperrors.Normalize(err).Details, "READONLY")
}

func TestRedisSink_Append_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err := NewRedisSink(client, "k").Append(context.Background(), createTestRecord("x"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeResultWriteFailed, apperrors.Normalize(err).Code)
}

func TestPostgresSink_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	record := createTestRecord("Starbucks")
	mock.ExpectExec(`INSERT INTO "business_checks" \(id, checked_at, name, location, payload\)`).
		WithArgs(sqlmock.AnyArg(), record.CheckedAt, "Starbucks", "Connaught Place", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sink := NewPostgresSink(db, "business_checks")
	require.NoError(t, sink.Append(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSink_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "business_checks"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewPostgresSink(db, "business_checks").EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSink_Append_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO`).WillReturnError(fmt.Errorf("relation does not exist"))

	err = NewPostgresSink(db, "business_checks").Append(context.Background(), createTestRecord("x"))
	require.Error(t, err)
	assert.Contains(t, apperrors.Normalize(err).Details, "relation does not exist")
}

func newTestElasticsearch(t *testing.T, status int, captured *string) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			body, _ := io.ReadAll(r.Body)
			*captured = r.Method + " " + r.URL.Path + " " + string(body)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSink_Append(t *testing.T) {
	var captured string
	client := newTestElasticsearch(t, http.StatusCreated, &captured)

	require.NoError(t, NewElasticsearchSink(client, "business-checks").Append(context.Background(), createTestRecord("Starbucks")))

	assert.True(t, strings.HasPrefix(captured, "PUT /business-checks/_doc/"), captured)
	assert.Contains(t, captured, `"name":"Starbucks"`)
}

func TestElasticsearchSink_Append_ErrorStatus(t *testing.T) {
	client := newTestElasticsearch(t, http.StatusBadRequest, nil)

	err := NewElasticsearchSink(client, "business-checks").Append(context.Background(), createTestRecord("x"))
	assert.Error(t, err)
}

type failingSink struct{ calls int }

func (f *failingSink) Name() string { return "failing" }
func (f *failingSink) Append(ctx context.Context, record *models.AggregateResponse) error {
	f.calls++
	return fmt.Errorf("disk full")
}

func TestLogger_Append_SwallowsSinkErrors(t *testing.T) {
	fileSink := newTestFileSink(t)
	failing := &failingSink{}

	l := NewLogger(logger.NewTestLogger(t), failing, fileSink)
	assert.True(t, l.Enabled())

	l.Append(context.Background(), createTestRecord("Starbucks"))

	assert.Equal(t, 1, failing.calls)
	assert.Len(t, readEntries(t, fileSink.Path()), 1, "other sinks still receive the record")
}

func TestLogger_NoSinks(t *testing.T) {
	l := NewLogger(logger.NewNoOpLogger())
	assert.False(t, l.Enabled())
	l.Append(context.Background(), createTestRecord("x"))

	var nilLogger *Logger
	assert.False(t, nilLogger.Enabled())
	nilLogger.Append(context.Background(), createTestRecord("x"))
}

func TestSnapshotWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w := NewSnapshotWriter(dir)
	require.NoError(t, w.Init())

	at := time.UnixMilli(1714555800123)
	path, err := w.Write(map[string]interface{}{"prompt": "hi"}, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "llm-results-1714555800123.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"prompt\": \"hi\"\n}", string(raw))
}

func TestSnapshotWriter_Write_MissingDir(t *testing.T) {
	w := NewSnapshotWriter(filepath.Join(t.TempDir(), "nope"))
	_, err := w.Write(map[string]string{"a": "b"}, time.Now())
	assert.Error(t, err)
}
