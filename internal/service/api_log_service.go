package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/pkg/jobs"
)

const apiLogJobType = "api_log"

type apiLogRepository interface {
	CreateAPILog(ctx context.Context, log *models.APILog) error
}

// APILogService persists request traces off the request path. Records
// flow through a bounded in-memory queue; when the buffer is full the
// record is dropped rather than delaying the response.
type APILogService struct {
	repo   apiLogRepository
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAPILogService constructs the service and its backing queue. Start
// must be called before records are accepted.
func NewAPILogService(repo apiLogRepository, cfg jobs.QueueConfig, logger *zap.Logger) *APILogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &APILogService{repo: repo, logger: logger}
	cfg.Logger = logger
	svc.queue = jobs.NewQueue("api-log", svc.handleJob, cfg)
	return svc
}

// Start boots the queue workers.
func (s *APILogService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *APILogService) Stop() {
	s.queue.Stop()
}

// Record submits a trace without blocking. The return value reports
// whether the record was accepted; callers ignore it on the hot path.
func (s *APILogService) Record(log models.APILog) bool {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	return s.queue.TryEnqueue(jobs.Job{
		ID:      log.ID,
		Type:    apiLogJobType,
		Payload: log,
	})
}

func (s *APILogService) handleJob(ctx context.Context, job jobs.Job) error {
	log, ok := job.Payload.(models.APILog)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	return s.repo.CreateAPILog(ctx, &log)
}
