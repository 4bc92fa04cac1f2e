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

// SubmissionStore archives delivered questionnaires.
type SubmissionStore interface {
	Insert(ctx context.Context, rec *model.SubmissionRecord) error
}

// SubmissionWorker consumes submission_log_queue and writes the audit trail.
type SubmissionWorker struct {
	consumer queueConsumer
	store    SubmissionStore
}

// NewSubmissionWorker creates a new SubmissionWorker.
func NewSubmissionWorker(store SubmissionStore, rdb *redis.Client, log zerolog.Logger) *SubmissionWorker {
	w := &SubmissionWorker{store: store}
	w.consumer = queueConsumer{
		rdb:    rdb,
		queue:  config.WorkerKey.SubmissionLogQueue,
		handle: w.handle,
		log:    log.With().Str("component", "submission_worker").Logger(),
		retry:  RetryDelay,
	}
	return w
}

// Start runs the worker loop until ctx is cancelled and the queue is
// drained. Call in a goroutine.
func (w *SubmissionWorker) Start(ctx context.Context) error {
	return w.consumer.run(ctx)
}

func (w *SubmissionWorker) handle(ctx context.Context, raw string) error {
	var rec model.SubmissionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("%w: %w", errBadJob, err)
	}
	if rec.SessionID == "" {
		return fmt.Errorf("%w: missing session_id", errBadJob)
	}
	return w.store.Insert(ctx, &rec)
}
