package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type workRequestRepository interface {
	MaxControlSeq(ctx context.Context, year string) (int, error)
	Create(ctx context.Context, req *models.WorkRequest) error
	FindByID(ctx context.Context, id string) (*models.WorkRequest, error)
	List(ctx context.Context, filter models.WorkRequestFilter) ([]models.WorkRequest, int, error)
	Update(ctx context.Context, req *models.WorkRequest) error
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error
	Archive(ctx context.Context, id string) error
}

type lookupChecker interface {
	ExistsActiveName(ctx context.Context, kind models.LookupKind, name string) (bool, error)
}

type attachmentStorage interface {
	Save(filename string, data []byte) (string, error)
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// UploadPolicy limits accepted work-request attachments.
type UploadPolicy struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// WorkRequestService implements the work-request lifecycle.
type WorkRequestService struct {
	repo      workRequestRepository
	lookups   lookupChecker
	storage   attachmentStorage
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	uploads   UploadPolicy
}

// NewWorkRequestService constructs a WorkRequestService.
func NewWorkRequestService(repo workRequestRepository, lookups lookupChecker, storage attachmentStorage, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, uploads UploadPolicy) *WorkRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if uploads.MaxFileSizeBytes <= 0 {
		uploads.MaxFileSizeBytes = 5 << 20
	}
	return &WorkRequestService{repo: repo, lookups: lookups, storage: storage, audit: audit, validator: validate, logger: logger, uploads: uploads}
}

// Create validates the payload against the lookup tables, assigns the next
// control number for the fiscal year and persists the request.
func (s *WorkRequestService) Create(ctx context.Context, req dto.CreateWorkRequestRequest, upload *dto.FileUpload, actorID string) (*models.WorkRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid work request payload")
	}
	if err := s.checkLookups(ctx, req.OfficeName, req.LocationName, req.CategoryName); err != nil {
		return nil, err
	}

	var filePath *string
	if upload != nil {
		saved, err := s.saveUpload(upload)
		if err != nil {
			return nil, err
		}
		filePath = &saved
	}

	controlNo, err := s.nextControlNo(ctx, req.FiscalYear)
	if err != nil {
		return nil, err
	}

	request := &models.WorkRequest{
		ControlNo:    controlNo,
		Description:  req.Description,
		OfficeName:   req.OfficeName,
		LocationName: req.LocationName,
		CategoryName: req.CategoryName,
		Area:         req.Area,
		Overtime:     req.Overtime,
		FiscalYear:   req.FiscalYear,
		FilePath:     filePath,
		Status:       models.StatusPending,
		RequestedBy:  actorID,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create work request")
	}

	s.recordAudit(ctx, actorID, models.AuditActionRequestCreate, request.ID, nil, request)
	return request, nil
}

// Get returns a single work request by ID.
func (s *WorkRequestService) Get(ctx context.Context, id string) (*models.WorkRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load work request")
	}
	return request, nil
}

// List returns filtered work requests with pagination metadata.
func (s *WorkRequestService) List(ctx context.Context, filter models.WorkRequestFilter) ([]models.WorkRequest, *models.Pagination, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", filter.Status))
	}
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list work requests")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return requests, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Update overwrites the mutable fields of a request. Last writer wins.
func (s *WorkRequestService) Update(ctx context.Context, id string, req dto.UpdateWorkRequestRequest, upload *dto.FileUpload, actorID string) (*models.WorkRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid work request payload")
	}
	if !models.ValidStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.Status))
	}
	if err := s.checkLookups(ctx, req.OfficeName, req.LocationName, req.CategoryName); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *current

	current.Description = req.Description
	current.OfficeName = req.OfficeName
	current.LocationName = req.LocationName
	current.CategoryName = req.CategoryName
	current.Area = req.Area
	current.Overtime = req.Overtime
	current.FiscalYear = req.FiscalYear
	current.Status = models.RequestStatus(req.Status)

	if upload != nil {
		saved, err := s.saveUpload(upload)
		if err != nil {
			return nil, err
		}
		current.FilePath = &saved
	}

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update work request")
	}

	s.recordAudit(ctx, actorID, models.AuditActionRequestUpdate, current.ID, &previous, current)
	return current, nil
}

// UpdateStatus writes only the status column.
func (s *WorkRequestService) UpdateStatus(ctx context.Context, id, status, actorID string) error {
	if !models.ValidStatus(status) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	if err := s.repo.UpdateStatus(ctx, id, models.RequestStatus(status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update request status")
	}
	s.recordAudit(ctx, actorID, models.AuditActionRequestUpdate, id, nil, map[string]string{"status": status})
	return nil
}

// Archive soft-deletes a work request; the row stays queryable with the
// archived filter.
func (s *WorkRequestService) Archive(ctx context.Context, id, actorID string) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive work request")
	}
	s.recordAudit(ctx, actorID, models.AuditActionRequestArchive, id, nil, map[string]bool{"is_archived": true})
	return nil
}

// nextControlNo issues {year}-{seq} with the sequence zero-padded to three
// digits. The max read and the insert are not one transaction; concurrent
// submissions for the same year can collide.
func (s *WorkRequestService) nextControlNo(ctx context.Context, year string) (string, error) {
	max, err := s.repo.MaxControlSeq(ctx, year)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve control number")
	}
	return fmt.Sprintf("%s-%03d", year, max+1), nil
}

func (s *WorkRequestService) checkLookups(ctx context.Context, office, location, category string) error {
	checks := []struct {
		kind  models.LookupKind
		value string
		label string
	}{
		{models.LookupOffice, office, "office_name"},
		{models.LookupLocation, location, "location_name"},
		{models.LookupCategory, category, "category_name"},
	}
	for _, check := range checks {
		ok, err := s.lookups.ExistsActiveName(ctx, check.kind, check.value)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate "+check.label)
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %q is not an active entry", check.label, check.value))
		}
	}
	return nil
}

func (s *WorkRequestService) saveUpload(upload *dto.FileUpload) (string, error) {
	if upload.Size > s.uploads.MaxFileSizeBytes || int64(len(upload.Data)) > s.uploads.MaxFileSizeBytes {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", s.uploads.MaxFileSizeBytes))
	}
	if len(s.uploads.AllowedMIMEs) > 0 {
		allowed := false
		for _, mime := range s.uploads.AllowedMIMEs {
			if strings.EqualFold(mime, upload.ContentType) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("content type %q is not accepted", upload.ContentType))
		}
	}

	ext := filepath.Ext(upload.Filename)
	name := fmt.Sprintf("requests/%s_%s%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8], ext)
	saved, err := s.storage.Save(name, upload.Data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}
	return saved, nil
}

func (s *WorkRequestService) recordAudit(ctx context.Context, actorID, action, resourceID string, oldValue, newValue interface{}) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "work_requests",
		ResourceID: &resourceID,
	}
	if actorID != "" {
		entry.UserID = &actorID
	}
	if oldValue != nil {
		if data, err := json.Marshal(oldValue); err == nil {
			entry.OldValues = data
		}
	}
	if newValue != nil {
		if data, err := json.Marshal(newValue); err == nil {
			entry.NewValues = data
		}
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
