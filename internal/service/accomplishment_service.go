package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type accomplishmentRepository interface {
	FindByRequestID(ctx context.Context, requestID string) (*models.AccomplishmentReport, error)
	FindByID(ctx context.Context, id string) (*models.AccomplishmentReport, error)
	Create(ctx context.Context, report *models.AccomplishmentReport) error
	Update(ctx context.Context, report *models.AccomplishmentReport) error
	UpdateStatusByRequestID(ctx context.Context, requestID string, status models.RequestStatus) error
	List(ctx context.Context, requestID string, page, pageSize int) ([]models.AccomplishmentReport, int, error)
}

type requestStatusWriter interface {
	FindByID(ctx context.Context, id string) (*models.WorkRequest, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error
}

// AccomplishmentService manages accomplishment reports and propagates
// their status to the parent work request.
type AccomplishmentService struct {
	repo      accomplishmentRepository
	requests  requestStatusWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccomplishmentService constructs an AccomplishmentService.
func NewAccomplishmentService(repo accomplishmentRepository, requests requestStatusWriter, validate *validator.Validate, logger *zap.Logger) *AccomplishmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AccomplishmentService{repo: repo, requests: requests, validator: validate, logger: logger}
}

// Upsert creates or replaces the accomplishment row for a request, then
// cascades the status to every sibling row and to the parent request.
// The three writes run as separate statements, not one transaction; a
// failure mid-way leaves the rows partially updated.
func (s *AccomplishmentService) Upsert(ctx context.Context, req dto.AccomplishmentRequest) (*models.AccomplishmentReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid accomplishment payload")
	}
	if req.Status == "" {
		req.Status = string(models.StatusCompleted)
	}
	if !models.ValidStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.Status))
	}
	status := models.RequestStatus(req.Status)

	if _, err := s.requests.FindByID(ctx, req.RequestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load work request")
	}

	report, err := s.repo.FindByRequestID(ctx, req.RequestID)
	switch {
	case err == nil:
		report.Description = req.Description
		report.DateStarted = req.DateStarted
		report.DateCompleted = req.DateCompleted
		report.Status = status
		report.Remarks = req.Remarks
		if err := s.repo.Update(ctx, report); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update accomplishment report")
		}
	case errors.Is(err, sql.ErrNoRows):
		report = &models.AccomplishmentReport{
			RequestID:     req.RequestID,
			Description:   req.Description,
			DateStarted:   req.DateStarted,
			DateCompleted: req.DateCompleted,
			Status:        status,
			Remarks:       req.Remarks,
		}
		if err := s.repo.Create(ctx, report); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create accomplishment report")
		}
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accomplishment report")
	}

	if err := s.repo.UpdateStatusByRequestID(ctx, req.RequestID, status); err != nil {
		s.logger.Warn("failed to cascade status to sibling accomplishment rows", zap.String("request_id", req.RequestID), zap.Error(err))
	}
	if err := s.requests.UpdateStatus(ctx, req.RequestID, status); err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to cascade status to work request", zap.String("request_id", req.RequestID), zap.Error(err))
	}

	return report, nil
}

// Get returns an accomplishment report by ID.
func (s *AccomplishmentService) Get(ctx context.Context, id string) (*models.AccomplishmentReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "accomplishment report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accomplishment report")
	}
	return report, nil
}

// GetByRequest returns the newest accomplishment row for a work request.
func (s *AccomplishmentService) GetByRequest(ctx context.Context, requestID string) (*models.AccomplishmentReport, error) {
	report, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "accomplishment report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accomplishment report")
	}
	return report, nil
}

// List returns accomplishment reports with pagination metadata.
func (s *AccomplishmentService) List(ctx context.Context, requestID string, page, pageSize int) ([]models.AccomplishmentReport, *models.Pagination, error) {
	reports, total, err := s.repo.List(ctx, requestID, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list accomplishment reports")
	}
	return reports, normalizePagination(page, pageSize, total), nil
}
