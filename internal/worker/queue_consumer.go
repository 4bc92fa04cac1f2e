package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	PollTimeout = 1 * time.Second // Must be >= 1s to satisfy Redis
	RetryDelay  = 5 * time.Second
)

// jobHandler persists one raw job. Returning errBadJob discards the job;
// any other error puts it back on the queue.
type jobHandler func(ctx context.Context, raw string) error

var errBadJob = errors.New("malformed job")

// queueConsumer is the BLPOP loop shared by the persistence workers.
type queueConsumer struct {
	rdb    *redis.Client
	queue  string
	handle jobHandler
	log    zerolog.Logger
	retry  time.Duration
}

// run blocks until ctx is cancelled, then drains what is left. It returns
// an error when the Redis client is closed underneath it or when the drain
// leaves jobs unpersisted.
func (c *queueConsumer) run(ctx context.Context) error {
	c.log.Info().Str("queue", c.queue).Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("Worker stopping...")
			err := c.drain(context.Background())
			c.log.Info().Msg("Worker stopped")
			return err
		default:
			if err := c.processNext(ctx); err != nil {
				return err
			}
		}
	}
}

func (c *queueConsumer) processNext(ctx context.Context) error {
	result, err := c.rdb.BLPop(ctx, PollTimeout, c.queue).Result()
	if err != nil {
		if errors.Is(err, redis.ErrClosed) {
			return fmt.Errorf("queue %s: %w", c.queue, err)
		}
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			c.log.Error().Err(err).Msg("BLPop error")
			c.sleep(ctx)
		}
		return nil
	}
	if len(result) < 2 {
		return nil
	}

	if err := c.handle(ctx, result[1]); err != nil {
		if errors.Is(err, errBadJob) {
			c.log.Error().Err(err).Str("job", result[1]).Msg("Discarding job")
			return nil
		}
		c.log.Error().Err(err).Dur("retry_in", c.retry).Msg("Persist error, requeueing")
		_ = c.requeue(context.WithoutCancel(ctx), result[1])
		c.sleep(ctx)
	}
	return nil
}

// requeue puts raw back at the tail of the queue. A failure here loses the
// job, so it is logged with the payload.
func (c *queueConsumer) requeue(ctx context.Context, raw string) error {
	if err := c.rdb.RPush(ctx, c.queue, raw).Err(); err != nil {
		c.log.Error().Err(err).Str("queue", c.queue).Str("job", raw).Msg("Requeue failed, job lost")
		return err
	}
	return nil
}

func (c *queueConsumer) sleep(ctx context.Context) {
	t := time.NewTimer(c.retry)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// drain processes all remaining items in the queue before shutdown.
func (c *queueConsumer) drain(ctx context.Context) error {
	drained := 0
	var failed error
	for {
		raw, err := c.rdb.LPop(ctx, c.queue).Result()
		if err != nil {
			break
		}

		if err := c.handle(ctx, raw); err != nil {
			if errors.Is(err, errBadJob) {
				c.log.Error().Err(err).Msg("Drain discarded job")
				continue
			}
			c.log.Error().Err(err).Msg("Drain persist error")
			if rqErr := c.requeue(ctx, raw); rqErr != nil {
				err = errors.Join(err, rqErr)
			}
			failed = fmt.Errorf("drain %s: %w", c.queue, err)
			break
		}
		drained++
	}

	if drained > 0 {
		c.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
	return failed
}
