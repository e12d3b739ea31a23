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

type lookupRepository interface {
	List(ctx context.Context, kind models.LookupKind, filter models.LookupFilter) ([]models.LookupItem, int, error)
	FindByID(ctx context.Context, kind models.LookupKind, id string) (*models.LookupItem, error)
	ExistsActiveName(ctx context.Context, kind models.LookupKind, name string) (bool, error)
	Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error
	Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error
	Archive(ctx context.Context, kind models.LookupKind, id string) error
}

// LookupService serves the shared reference-data tables.
type LookupService struct {
	repo      lookupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLookupService constructs a LookupService.
func NewLookupService(repo lookupRepository, validate *validator.Validate, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LookupService{repo: repo, validator: validate, logger: logger}
}

// List returns lookup rows with pagination metadata.
func (s *LookupService) List(ctx context.Context, kind models.LookupKind, filter models.LookupFilter) ([]models.LookupItem, *models.Pagination, error) {
	if !models.ValidLookupKind(kind) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lookup kind %q", kind))
	}
	items, total, err := s.repo.List(ctx, kind, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list "+string(kind))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return items, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a lookup row by ID.
func (s *LookupService) Get(ctx context.Context, kind models.LookupKind, id string) (*models.LookupItem, error) {
	if !models.ValidLookupKind(kind) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lookup kind %q", kind))
	}
	item, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, string(kind)+" entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+string(kind))
	}
	return item, nil
}

// Create inserts a lookup row. Active names are unique per table.
func (s *LookupService) Create(ctx context.Context, kind models.LookupKind, req dto.LookupRequest) (*models.LookupItem, error) {
	if !models.ValidLookupKind(kind) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lookup kind %q", kind))
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lookup payload")
	}
	exists, err := s.repo.ExistsActiveName(ctx, kind, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%q already exists", req.Name))
	}
	item := &models.LookupItem{Name: req.Name}
	if err := s.repo.Create(ctx, kind, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create "+string(kind))
	}
	return item, nil
}

// Update renames a lookup row.
func (s *LookupService) Update(ctx context.Context, kind models.LookupKind, id string, req dto.LookupRequest) (*models.LookupItem, error) {
	if !models.ValidLookupKind(kind) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lookup kind %q", kind))
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lookup payload")
	}
	item, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	if err := s.repo.Update(ctx, kind, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, string(kind)+" entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update "+string(kind))
	}
	return item, nil
}

// Archive soft-deletes a lookup row. Archived names stop validating new
// work requests; existing rows keep the stored string.
func (s *LookupService) Archive(ctx context.Context, kind models.LookupKind, id string) error {
	if !models.ValidLookupKind(kind) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lookup kind %q", kind))
	}
	if err := s.repo.Archive(ctx, kind, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, string(kind)+" entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive "+string(kind))
	}
	return nil
}
