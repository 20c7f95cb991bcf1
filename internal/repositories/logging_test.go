package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestLogQuery_Fields(t *testing.T) {
	logs := observeLogs(t)

	logQuery("SELECT 1\n\t  FROM users WHERE id = $1", []any{int64(7)}, 1, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "db query", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "SELECT 1 FROM users WHERE id = $1", fields["query"])
	assert.Contains(t, fields, "args")
	assert.Contains(t, fields, "result")
	assert.Contains(t, fields, "error")
}

func TestRedisRepositories_LogFields(t *testing.T) {
	_, rdb := setupMiniredis(t)
	ctx := context.Background()
	logs := observeLogs(t)

	cache := NewFollowCountCacheRepository(rdb, time.Minute)
	require.NoError(t, cache.SetFollowersCount(ctx, 2, 3))
	_, err := cache.GetFollowersCount(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 2))

	revocations := NewTokenRevocationRepository(rdb)
	require.NoError(t, revocations.Revoke(ctx, "jti-1", time.Minute))
	_, err = revocations.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
		fields := entry.ContextMap()
		if _, ok := fields["keys"]; !ok {
			assert.Contains(t, fields, "key", entry.Message)
		}
		assert.Contains(t, fields, "error", entry.Message)
	}
	assert.Equal(t, []string{"redis set", "redis get", "redis del", "redis set", "redis exists"}, messages)
}
