package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const defaultLayoutTTL = 2 * time.Hour

// LayoutRepository stores the print-layout editor state of each browser
// context as JSON. Key format: rifa:layout:<context_id>
//
// The state expires after ttl without writes, which is how an abandoned
// editor is discarded.
type LayoutRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLayoutRepository creates a LayoutRepository wrapping the given Redis client.
func NewLayoutRepository(client *redis.Client, ttl time.Duration) ports.LayoutRepository {
	if ttl <= 0 {
		ttl = defaultLayoutTTL
	}
	return &LayoutRepository{client: client, ttl: ttl}
}

func (r *LayoutRepository) Load(ctx context.Context, contextID string) (*domain.PrintLayout, error) {
	raw, err := r.client.Get(ctx, layoutKey(contextID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("layout load: %w", err)
	}

	var l domain.PrintLayout
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("layout decode: %w", err)
	}
	return &l, nil
}

func (r *LayoutRepository) Save(ctx context.Context, contextID string, layout *domain.PrintLayout) error {
	raw, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("layout encode: %w", err)
	}
	if err := r.client.Set(ctx, layoutKey(contextID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("layout save: %w", err)
	}
	return nil
}

func (r *LayoutRepository) Delete(ctx context.Context, contextID string) error {
	if err := r.client.Del(ctx, layoutKey(contextID)).Err(); err != nil {
		return fmt.Errorf("layout delete: %w", err)
	}
	return nil
}

func layoutKey(contextID string) string {
	return "rifa:layout:" + contextID
}
