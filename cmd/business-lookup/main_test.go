package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type flakyPinger struct {
	failures int
	pings    int
}

func (p *flakyPinger) Ping(ctx context.Context) error {
	p.pings++
	if p.pings <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetry_ReusesClient(t *testing.T) {
	p := &flakyPinger{failures: 2}

	err := pingWithRetry(context.Background(), p, 5, time.Millisecond, zaptest.NewLogger(t), "Redis connection")

	require.NoError(t, err)
	assert.Equal(t, 3, p.pings)
}

func TestPingWithRetry_GivesUp(t *testing.T) {
	p := &flakyPinger{failures: 10}

	err := pingWithRetry(context.Background(), p, 3, time.Millisecond, zaptest.NewLogger(t), "PostgreSQL connection")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PostgreSQL connection failed after 3 attempts")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 3, p.pings)
}
