package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/rs/zerolog"
)

// ContactService accepts contact form messages and hands them to the
// contact worker through a Redis queue.
type ContactService struct {
	queue Queue
	log   zerolog.Logger
	now   func() time.Time
}

// NewContactService creates a new ContactService.
func NewContactService(queue Queue, log zerolog.Logger) *ContactService {
	return &ContactService{
		queue: queue,
		log:   log.With().Str("component", "contact_service").Logger(),
		now:   time.Now,
	}
}

// Submit enqueues a validated contact request. A filled honeypot is reported
// as success to the sender but never enqueued.
func (s *ContactService) Submit(ctx context.Context, req model.ContactRequest, remoteIP string) error {
	if strings.TrimSpace(req.Website) != "" {
		s.log.Debug().Str("remote_ip", remoteIP).Msg("Honeypot filled, dropping contact message")
		return nil
	}

	msg := model.ContactMessage{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Subject:    req.Subject,
		Message:    strings.TrimSpace(req.Message),
		RemoteIP:   remoteIP,
		ReceivedAt: s.now().UTC(),
	}
	if err := s.queue.Push(ctx, config.WorkerKey.ContactMessagesQueue, msg); err != nil {
		return fmt.Errorf("enqueue contact message: %w", err)
	}

	s.log.Info().Str("subject", msg.Subject).Msg("Contact message accepted")
	return nil
}
