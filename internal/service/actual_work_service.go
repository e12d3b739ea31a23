package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type actualWorkRepository interface {
	Create(ctx context.Context, report *models.ActualWorkReport) error
	FindByID(ctx context.Context, id string) (*models.ActualWorkReport, error)
	List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.ActualWorkReport, int, error)
	Update(ctx context.Context, report *models.ActualWorkReport) error
	Archive(ctx context.Context, id string) error
}

type requestResolver interface {
	FindByID(ctx context.Context, id string) (*models.WorkRequest, error)
}

// ActualWorkService manages actual-work reports. The work-request link is
// optional; when supplied it must resolve or the call fails with 404.
type ActualWorkService struct {
	repo      actualWorkRepository
	requests  requestResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActualWorkService constructs an ActualWorkService.
func NewActualWorkService(repo actualWorkRepository, requests requestResolver, validate *validator.Validate, logger *zap.Logger) *ActualWorkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ActualWorkService{repo: repo, requests: requests, validator: validate, logger: logger}
}

// Create persists a new actual-work report.
func (s *ActualWorkService) Create(ctx context.Context, req dto.ActualWorkRequest) (*models.ActualWorkReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid actual work payload")
	}
	if err := s.resolveRequestLink(ctx, req.ControlRequestID); err != nil {
		return nil, err
	}
	report := &models.ActualWorkReport{
		RecommendedAction: req.RecommendedAction,
		Remarks:           req.Remarks,
		ControlNo:         req.ControlNo,
		ControlRequestID:  req.ControlRequestID,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create actual work report")
	}
	return report, nil
}

// Get returns an actual-work report by ID.
func (s *ActualWorkService) Get(ctx context.Context, id string) (*models.ActualWorkReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actual work report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load actual work report")
	}
	return report, nil
}

// List returns actual-work reports with pagination metadata.
func (s *ActualWorkService) List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.ActualWorkReport, *models.Pagination, error) {
	reports, total, err := s.repo.List(ctx, search, includeArchived, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list actual work reports")
	}
	return reports, normalizePagination(page, pageSize, total), nil
}

// Update overwrites an actual-work report.
func (s *ActualWorkService) Update(ctx context.Context, id string, req dto.ActualWorkRequest) (*models.ActualWorkReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid actual work payload")
	}
	if err := s.resolveRequestLink(ctx, req.ControlRequestID); err != nil {
		return nil, err
	}
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report.RecommendedAction = req.RecommendedAction
	report.Remarks = req.Remarks
	report.ControlNo = req.ControlNo
	report.ControlRequestID = req.ControlRequestID
	if err := s.repo.Update(ctx, report); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actual work report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update actual work report")
	}
	return report, nil
}

// Archive soft-deletes an actual-work report.
func (s *ActualWorkService) Archive(ctx context.Context, id string) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "actual work report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive actual work report")
	}
	return nil
}

func (s *ActualWorkService) resolveRequestLink(ctx context.Context, requestID *string) error {
	if requestID == nil || *requestID == "" {
		return nil
	}
	if _, err := s.requests.FindByID(ctx, *requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "linked work request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve linked work request")
	}
	return nil
}
