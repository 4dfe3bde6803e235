package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionRepository(rdb, ttl), mr
}

func TestRedisRepositoryTranscript(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRepo(t, time.Minute)

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("núi bà đen có gì")))
	require.NoError(t, r.AddMessage(ctx, "s1", schema.AssistantMessage("có cáp treo", nil)))

	history, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "núi bà đen có gì", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)
}

func TestRedisRepositoryEmptyHistory(t *testing.T) {
	r, _ := newRedisRepo(t, time.Minute)

	history, err := r.LoadHistory(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestRedisRepositoryTopicSlot(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRepo(t, time.Minute)

	topic, err := r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, topic)

	require.NoError(t, r.SetTopic(ctx, "s1", "hồ dầu tiếng"))
	topic, err = r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hồ dầu tiếng", topic)

	require.NoError(t, r.SetTopic(ctx, "s1", ""))
	topic, err = r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, topic)
}

func TestRedisRepositoryTTLOnTouch(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, time.Minute)

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("hi")))
	assert.Greater(t, mr.TTL("session:s1:messages"), time.Duration(0))

	// Session state expires together once the TTL elapses.
	mr.FastForward(2 * time.Minute)
	history, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestRedisRepositoryClearHistory(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRepo(t, time.Minute)

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("hi")))
	require.NoError(t, r.SetTopic(ctx, "s1", "núi bà đen"))

	require.NoError(t, r.ClearHistory(ctx, "s1"))

	history, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)

	topic, err := r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, topic)
}
