package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token in Redis so several terminals or hosts can share
// one session. Namespace separates profiles.
type RedisStore struct {
	rdb       redis.Cmdable
	namespace string
}

// NewRedisStore returns a RedisStore. An empty namespace uses "default".
func NewRedisStore(rdb redis.Cmdable, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("damagesnap:%s:%s", s.namespace, TokenKey)
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token from redis: %w", err)
	}
	return token, nil
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is empty")
	}
	if err := s.rdb.Set(ctx, s.key(), token, 0).Err(); err != nil {
		return fmt.Errorf("store token in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearToken(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear token in redis: %w", err)
	}
	return nil
}
