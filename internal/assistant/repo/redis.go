package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/tayninh-assistant/server/internal/assistant/model"
	errx "github.com/tayninh-assistant/server/internal/core/error"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

// RedisSessionRepository stores transcripts as Redis lists and the topic
// slot as a plain key, both expiring after the configured TTL so stale
// sessions clean themselves up.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) messagesKey(sessionID string) string {
	return fmt.Sprintf("session:%s:messages", sessionID)
}

func (r *RedisSessionRepository) topicKey(sessionID string) string {
	return fmt.Sprintf("session:%s:topic", sessionID)
}

func (r *RedisSessionRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
		}
	}
	return nil
}

func (r *RedisSessionRepository) LoadHistory(ctx context.Context, sessionID string) (*model.SessionHistory, error) {
	key := r.messagesKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return &model.SessionHistory{SessionID: sessionID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.SessionHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *RedisSessionRepository) Topic(ctx context.Context, sessionID string) (string, error) {
	topic, err := r.rdb.Get(ctx, r.topicKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to load topic from redis")
		return "", errx.WrapRedis(err)
	}
	return topic, nil
}

func (r *RedisSessionRepository) SetTopic(ctx context.Context, sessionID string, topic string) error {
	key := r.topicKey(sessionID)
	if topic == "" {
		if err := r.rdb.Del(ctx, key).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to clear topic in redis")
			return errx.WrapRedis(err)
		}
		return nil
	}
	if err := r.rdb.Set(ctx, key, topic, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set topic in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) ClearHistory(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, r.messagesKey(sessionID), r.topicKey(sessionID)).Err(); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
