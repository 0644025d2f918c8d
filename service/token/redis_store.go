package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "bkash:token:"

// RedisStore shares one token between every client configured with the same app key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisStore keys the token by app key inside the given redis client.
func NewRedisStore(client redis.UniversalClient, appKey string) *RedisStore {
	return &RedisStore{client: client, key: redisKeyPrefix + appKey, now: time.Now}
}

// NewRedisStoreFromURL parses a redis:// URL and connects lazily.
func NewRedisStoreFromURL(redisURL, appKey string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), appKey), nil
}

func (s *RedisStore) Load(ctx context.Context) (*Token, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	var t Token
	if err = json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &t, nil
}

// Save stores the token with a TTL equal to its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, token *Token) error {
	if token == nil {
		return s.Clear(ctx)
	}

	ttl := token.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Clear(ctx)
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err = s.client.Set(ctx, s.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Close releases the underlying redis connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
