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

type inspectionRepository interface {
	Create(ctx context.Context, report *models.InspectionReport) error
	FindByID(ctx context.Context, id string) (*models.InspectionReport, error)
	List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.InspectionReport, int, error)
	Update(ctx context.Context, report *models.InspectionReport) error
	Archive(ctx context.Context, id string) error
}

// InspectionService manages inspection reports. Reports stand alone; no
// foreign key ties them to a work request.
type InspectionService struct {
	repo      inspectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInspectionService constructs an InspectionService.
func NewInspectionService(repo inspectionRepository, validate *validator.Validate, logger *zap.Logger) *InspectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InspectionService{repo: repo, validator: validate, logger: logger}
}

// Create persists a new inspection report.
func (s *InspectionService) Create(ctx context.Context, req dto.InspectionRequest) (*models.InspectionReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inspection payload")
	}
	report := &models.InspectionReport{
		Description:    req.Description,
		Recommendation: req.Recommendation,
		InspectedBy:    req.InspectedBy,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inspection report")
	}
	return report, nil
}

// Get returns an inspection report by ID.
func (s *InspectionService) Get(ctx context.Context, id string) (*models.InspectionReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inspection report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection report")
	}
	return report, nil
}

// List returns inspection reports with pagination metadata.
func (s *InspectionService) List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.InspectionReport, *models.Pagination, error) {
	reports, total, err := s.repo.List(ctx, search, includeArchived, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inspection reports")
	}
	return reports, normalizePagination(page, pageSize, total), nil
}

// Update overwrites an inspection report.
func (s *InspectionService) Update(ctx context.Context, id string, req dto.InspectionRequest) (*models.InspectionReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inspection payload")
	}
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Description = req.Description
	report.Recommendation = req.Recommendation
	report.InspectedBy = req.InspectedBy
	if err := s.repo.Update(ctx, report); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inspection report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update inspection report")
	}
	return report, nil
}

// Archive soft-deletes an inspection report.
func (s *InspectionService) Archive(ctx context.Context, id string) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "inspection report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive inspection report")
	}
	return nil
}

func normalizePagination(page, pageSize, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
}
