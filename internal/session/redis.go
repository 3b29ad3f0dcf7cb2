package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments with more than one
// API instance sharing revocation state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func revocationKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

// Revoke records the token id with the given TTL
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.client == nil {
		return errors.New("redis not configured")
	}
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err()
}

// Revoked reports whether the token id is present in Redis
func (s *RedisStore) Revoked(ctx context.Context, tokenID string) (bool, error) {
	if s.client == nil {
		return false, errors.New("redis not configured")
	}
	_, err := s.client.Get(ctx, revocationKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
