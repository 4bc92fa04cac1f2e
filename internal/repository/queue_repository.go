package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// QueueRepository pushes JSON jobs onto Redis lists consumed by the workers.
type QueueRepository struct {
	rdb *redis.Client
}

// NewQueueRepository creates a new QueueRepository.
func NewQueueRepository(rdb *redis.Client) *QueueRepository {
	return &QueueRepository{rdb: rdb}
}

// Push appends v to the named queue.
func (r *QueueRepository) Push(ctx context.Context, queue string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := r.rdb.RPush(ctx, queue, raw).Err(); err != nil {
		return fmt.Errorf("push %s: %w", queue, err)
	}
	return nil
}

// Len reports how many jobs wait in the named queue.
func (r *QueueRepository) Len(ctx context.Context, queue string) (int64, error) {
	return r.rdb.LLen(ctx, queue).Result()
}
