package payout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPayout_Transfer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPayout(zap.New(core))

	require.NoError(t, p.Transfer(context.Background(), "alice", 7))

	entries := logs.FilterMessage("payout issued").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].ContextMap()["to"])
	assert.Equal(t, uint64(7), entries[0].ContextMap()["amount"])
}

func TestLogPayout_CanceledContext(t *testing.T) {
	p := NewLogPayout(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Transfer(ctx, "alice", 7), context.Canceled)
}
