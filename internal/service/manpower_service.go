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

type manpowerRepository interface {
	Create(ctx context.Context, mp *models.Manpower) error
	FindByID(ctx context.Context, id string) (*models.Manpower, error)
	List(ctx context.Context, filter models.ManpowerFilter) ([]models.Manpower, int, error)
	Update(ctx context.Context, mp *models.Manpower) error
	Archive(ctx context.Context, id string) error
}

// ManpowerService manages maintenance crew records.
type ManpowerService struct {
	repo      manpowerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewManpowerService constructs a ManpowerService.
func NewManpowerService(repo manpowerRepository, validate *validator.Validate, logger *zap.Logger) *ManpowerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ManpowerService{repo: repo, validator: validate, logger: logger}
}

// Create registers a crew member.
func (s *ManpowerService) Create(ctx context.Context, req dto.ManpowerRequest) (*models.Manpower, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid manpower payload")
	}
	mp := &models.Manpower{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
		DivisionName: req.DivisionName,
	}
	if err := s.repo.Create(ctx, mp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create manpower record")
	}
	return mp, nil
}

// Get returns a crew member by ID.
func (s *ManpowerService) Get(ctx context.Context, id string) (*models.Manpower, error) {
	mp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "manpower record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load manpower record")
	}
	return mp, nil
}

// List returns crew members with pagination metadata.
func (s *ManpowerService) List(ctx context.Context, filter models.ManpowerFilter) ([]models.Manpower, *models.Pagination, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list manpower records")
	}
	return rows, normalizePagination(filter.Page, filter.PageSize, total), nil
}

// Update overwrites a crew member record.
func (s *ManpowerService) Update(ctx context.Context, id string, req dto.ManpowerRequest) (*models.Manpower, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid manpower payload")
	}
	mp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mp.FirstName = req.FirstName
	mp.LastName = req.LastName
	mp.Position = req.Position
	mp.DivisionName = req.DivisionName
	if err := s.repo.Update(ctx, mp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "manpower record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update manpower record")
	}
	return mp, nil
}

// Archive soft-deletes a crew member record.
func (s *ManpowerService) Archive(ctx context.Context, id string) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "manpower record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive manpower record")
	}
	return nil
}
