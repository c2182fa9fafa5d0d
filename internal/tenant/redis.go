package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSource keeps tenant documents as redis strings.
type RedisSource struct {
	client *redis.Client
	prefix string
}

// NewRedisSource returns new RedisSource reading documents from keys with provided prefix.
func NewRedisSource(client *redis.Client, prefix string) *RedisSource {
	return &RedisSource{
		client: client,
		prefix: prefix,
	}
}

// Document returns tenant document or ErrConfigNotFound.
func (s *RedisSource) Document(ctx context.Context, tenant string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.prefix+tenant).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("can't get config of tenant %q: %w", tenant, err)
	}
	return raw, nil
}

// Put stores tenant document.
func (s *RedisSource) Put(ctx context.Context, tenant string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("can't encode config of tenant %q: %w", tenant, err)
	}
	if err := s.client.Set(ctx, s.prefix+tenant, raw, 0).Err(); err != nil {
		return fmt.Errorf("can't put config of tenant %q: %w", tenant, err)
	}
	return nil
}
