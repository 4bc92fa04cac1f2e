package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ContactStore persists contact messages.
type ContactStore interface {
	Insert(ctx context.Context, m *model.ContactMessage) error
}

// ContactWorker consumes contact_messages_queue and inserts messages into
// PostgreSQL.
type ContactWorker struct {
	consumer queueConsumer
	store    ContactStore
}

// NewContactWorker creates a new ContactWorker.
func NewContactWorker(store ContactStore, rdb *redis.Client, log zerolog.Logger) *ContactWorker {
	w := &ContactWorker{store: store}
	w.consumer = queueConsumer{
		rdb:    rdb,
		queue:  config.WorkerKey.ContactMessagesQueue,
		handle: w.handle,
		log:    log.With().Str("component", "contact_worker").Logger(),
		retry:  RetryDelay,
	}
	return w
}

// Start runs the worker loop until ctx is cancelled and the queue is
// drained. Call in a goroutine.
func (w *ContactWorker) Start(ctx context.Context) error {
	return w.consumer.run(ctx)
}

func (w *ContactWorker) handle(ctx context.Context, raw string) error {
	var msg model.ContactMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return fmt.Errorf("%w: %w", errBadJob, err)
	}
	if msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("%w: empty contact message", errBadJob)
	}
	return w.store.Insert(ctx, &msg)
}
