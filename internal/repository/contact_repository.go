package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/proffreport/profreport-backend/internal/model"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Insert(ctx context.Context, m *model.ContactMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, remote_ip, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.Name, m.Email, m.Subject, m.Message, m.RemoteIP, m.ReceivedAt)
	return err
}
