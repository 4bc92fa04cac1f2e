package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/proffreport/profreport-backend/internal/model"
)

// SubmissionRepository archives delivered questionnaires.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Insert is idempotent per session: a redelivered job leaves the first row.
func (r *SubmissionRepository) Insert(ctx context.Context, rec *model.SubmissionRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO submissions (session_id, test_type, tariff, name, email, path, answered, dropped, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (session_id) DO NOTHING`,
		rec.SessionID, string(rec.TestType), string(rec.Tariff), rec.Name, rec.Email,
		string(rec.Path), rec.Answered, rec.Dropped, rec.SubmittedAt)
	return err
}
