package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// ClientStorage keeps each browser context's durable key/value entries in
// one Redis hash. Key format: rifa:ctx:<context_id>
//
// Every write slides the hash expiry forward by ttl.
type ClientStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClientStorage creates a ClientStorage wrapping the given Redis client.
func NewClientStorage(client *redis.Client, ttl time.Duration) ports.ClientStorage {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &ClientStorage{client: client, ttl: ttl}
}

func (s *ClientStorage) Get(ctx context.Context, contextID, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, contextKey(contextID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client storage get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *ClientStorage) Set(ctx context.Context, contextID, key, value string) error {
	if err := s.write(ctx, contextID, key, value); err != nil {
		return fmt.Errorf("client storage set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all values in one MULTI/EXEC, so a failure leaves none of
// them behind.
func (s *ClientStorage) SetMany(ctx context.Context, contextID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	if err := s.write(ctx, contextID, pairs...); err != nil {
		return fmt.Errorf("client storage set many: %w", err)
	}
	return nil
}

func (s *ClientStorage) write(ctx context.Context, contextID string, pairs ...any) error {
	k := contextKey(contextID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, pairs...)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	return err
}

// Touch slides the hash expiry forward by ttl. A missing hash stays missing.
func (s *ClientStorage) Touch(ctx context.Context, contextID string) error {
	if err := s.client.Expire(ctx, contextKey(contextID), s.ttl).Err(); err != nil {
		return fmt.Errorf("client storage touch: %w", err)
	}
	return nil
}

func (s *ClientStorage) Delete(ctx context.Context, contextID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, contextKey(contextID), keys...).Err(); err != nil {
		return fmt.Errorf("client storage delete: %w", err)
	}
	return nil
}

func contextKey(contextID string) string {
	return "rifa:ctx:" + contextID
}
