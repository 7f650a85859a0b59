package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-extractor/internal/cache"
	"quiz-extractor/internal/config"
	"quiz-extractor/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelReply = `{"questions":[{"id":1,"question":"2+2?","options":{"A":"3","B":"4"},"correct_answer":null}]}`

func replyTTL(t *testing.T) time.Duration {
	t.Helper()
	cfg := &config.Config{Cache: config.CacheConfig{ReplyTTL: "24h"}}
	ttl := cfg.ParseTTLStringOrDefault(cfg.Cache.ReplyTTL, time.Hour)
	require.Equal(t, 24*time.Hour, ttl)
	return ttl
}

func TestRedisCacheAdapter_ReplyRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.ReplyCacheKey("llama3", "Page one text\n")
	ttl := replyTTL(t)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, modelReply, ttl).SetVal("OK")
	mock.ExpectGet(key).SetVal(modelReply)

	_, err := c.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, key, modelReply, ttl))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, modelReply, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_DistinctDocumentsDoNotShareReplies(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheAdapter(db)
	ctx := context.Background()

	cached := cache.ReplyCacheKey("llama3", "first document")
	other := cache.ReplyCacheKey("llama3", "second document")
	require.NotEqual(t, cached, other)

	mock.ExpectGet(other).RedisNil()

	_, err := c.Get(ctx, other)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Errors(t *testing.T) {
	key := cache.ReplyCacheKey("llama3", "text")
	redisErr := errors.New("connection refused")

	t.Run("Get", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetErr(redisErr)

		val, err := NewRedisCacheAdapter(db).Get(context.Background(), key)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Set", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSet(key, modelReply, 24*time.Hour).SetErr(redisErr)

		err := NewRedisCacheAdapter(db).Set(context.Background(), key, modelReply, 24*time.Hour)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ping", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(redisErr)

		assert.ErrorIs(t, NewRedisCacheAdapter(db).Ping(context.Background()), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, NewRedisCacheAdapter(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
