package repo

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryTranscript(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	history, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("xin chào")))
	require.NoError(t, r.AddMessage(ctx, "s1", schema.AssistantMessage("chào bạn", nil)))

	history, err = r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "xin chào", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)

	// Sessions are isolated.
	other, err := r.LoadHistory(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Messages)
}

func TestMemoryRepositoryTopicSlot(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	topic, err := r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, topic)

	require.NoError(t, r.SetTopic(ctx, "s1", "núi bà đen"))
	topic, err = r.Topic(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "núi bà đen", topic)

	// Overwrite, then clear.
	require.NoError(t, r.SetTopic(ctx, "s1", "hồ dầu tiếng"))
	topic, _ = r.Topic(ctx, "s1")
	assert.Equal(t, "hồ dầu tiếng", topic)

	require.NoError(t, r.SetTopic(ctx, "s1", ""))
	topic, _ = r.Topic(ctx, "s1")
	assert.Empty(t, topic)
}

func TestMemoryRepositoryClearHistory(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

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
