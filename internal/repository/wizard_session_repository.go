package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a wizard session expired or never existed.
var ErrSessionNotFound = errors.New("wizard session not found")

// WizardSessionRepository keeps wizard states in Redis with a sliding TTL.
type WizardSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewWizardSessionRepository creates a new WizardSessionRepository.
func NewWizardSessionRepository(rdb *redis.Client, ttl time.Duration) *WizardSessionRepository {
	return &WizardSessionRepository{rdb: rdb, ttl: ttl}
}

// Save stores the state and refreshes its expiry.
func (r *WizardSessionRepository) Save(ctx context.Context, st *model.WizardState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	return r.rdb.Set(ctx, config.CacheKey.WizardStateKey(st.SessionID), raw, r.ttl).Err()
}

// Load fetches a state by session ID.
func (r *WizardSessionRepository) Load(ctx context.Context, sessionID string) (*model.WizardState, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.WizardStateKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wizard state: %w", err)
	}

	var st model.WizardState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	if st.Answers == nil {
		st.Answers = model.Answers{}
	}
	return &st, nil
}

// Delete drops the state and any submit lock.
func (r *WizardSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx,
		config.CacheKey.WizardStateKey(sessionID),
		config.CacheKey.WizardSubmitLockKey(sessionID),
	).Err()
}

// AcquireSubmitLock claims the right to submit a session's payment. It
// reports false while another submission holds the lock. The lock expires
// after ttl so a crashed request cannot block the session forever.
func (r *WizardSessionRepository) AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, config.CacheKey.WizardSubmitLockKey(sessionID), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire submit lock: %w", err)
	}
	return ok, nil
}

// ReleaseSubmitLock frees the submit lock.
func (r *WizardSessionRepository) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, config.CacheKey.WizardSubmitLockKey(sessionID)).Err()
}
