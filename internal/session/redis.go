package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so in-progress flows survive a
// process restart. Entries expire after the configured TTL; a zero TTL
// keeps them until deleted.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, senderID string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+senderID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, senderID string, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+senderID, raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, senderID string) error {
	return s.client.Del(ctx, keyPrefix+senderID).Err()
}
