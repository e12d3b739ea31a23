package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type auditLogRepository interface {
	ListAuditLogs(ctx context.Context, resource string, page, pageSize int) ([]models.AuditLog, int, error)
}

// AuditService exposes the audit trail to administrators.
type AuditService struct {
	repo   auditLogRepository
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditLogRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// List returns audit entries, optionally narrowed to a resource.
func (s *AuditService) List(ctx context.Context, resource string, page, pageSize int) ([]models.AuditLog, *models.Pagination, error) {
	rows, total, err := s.repo.ListAuditLogs(ctx, resource, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	return rows, normalizePagination(page, pageSize, total), nil
}
