package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// QueueInspector reports worker backlog.
type QueueInspector interface {
	Len(ctx context.Context, queue string) (int64, error)
}

// HealthHandler reports dependency status and worker queue depth.
type HealthHandler struct {
	checks    map[string]HealthCheck
	queues    QueueInspector
	startTime time.Time
	log       zerolog.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, queues QueueInspector, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		queues:    queues,
		startTime: time.Now(),
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			deps[name] = "down"
			status = "degraded"
			continue
		}
		deps[name] = "up"
	}

	queues := map[string]int64{}
	if h.queues != nil {
		for _, q := range []string{config.WorkerKey.ContactMessagesQueue, config.WorkerKey.SubmissionLogQueue} {
			if n, err := h.queues.Len(ctx, q); err == nil {
				queues[q] = n
			}
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	response.Success(c, code, gin.H{
		"status":       status,
		"uptime":       time.Since(h.startTime).Round(time.Second).String(),
		"dependencies": deps,
		"queues":       queues,
	})
}
