package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/pkg/jobs"
)

type auditRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditService records privileged actions. Writes go through an
// in-memory queue so a slow audit table never blocks a request.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue
	logger  *zap.Logger
	enabled bool
}

// AuditQueueConfig tunes the background persistence workers.
type AuditQueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
}

// NewAuditService constructs an AuditService with its worker queue. Call
// Start before recording and Stop on shutdown.
func NewAuditService(repo auditRepository, logger *zap.Logger, cfg AuditQueueConfig, enabled bool) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, logger: logger, enabled: enabled}
	s.queue = jobs.NewQueue("audit", s.persist, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the persistence workers.
func (s *AuditService) Start(ctx context.Context) {
	if s.enabled {
		s.queue.Start(ctx)
	}
}

// Stop drains the queue and waits for in-flight writes.
func (s *AuditService) Stop() {
	if s.enabled {
		s.queue.Stop()
	}
}

// Record enqueues an audit entry. Drops are logged, never surfaced.
func (s *AuditService) Record(entry models.AuditLog) {
	if s == nil || !s.enabled {
		return
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: "audit", Payload: entry}); err != nil {
		s.logger.Warn("audit entry dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}

// ListRecent returns the newest audit entries for the admin view.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *AuditService) persist(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditLog)
	if !ok {
		s.logger.Warn("audit job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.repo.Insert(ctx, &entry)
}
