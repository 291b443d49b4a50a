// internal/results/postgres.go
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresSink inserts one row per record with the full response as JSONB.
// The payload is bound as text; lib/pq would send []byte as bytea.
type PostgresSink struct {
	db    *sql.DB
	table string
}

func NewPostgresSink(db *sql.DB, table string) *PostgresSink {
	return &PostgresSink{db: db, table: pq.QuoteIdentifier(table)}
}

func (s *PostgresSink) Name() string {
	return config.BackendPostgres
}

// EnsureSchema creates the table if it does not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id UUID PRIMARY KEY,
		checked_at TIMESTAMPTZ NOT NULL,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		payload JSONB NOT NULL
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), fmt.Errorf("create table: %w", err))
	}
	return nil
}

func (s *PostgresSink) Append(ctx context.Context, record *models.AggregateResponse) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, checked_at, name, location, payload) VALUES ($1, $2, $3, $4, $5)`,
		s.table,
	)
	_, err = s.db.ExecContext(ctx, query,
		uuid.NewString(),
		record.CheckedAt,
		record.Query.Name,
		record.Query.Location,
		string(payload),
	)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	return nil
}
