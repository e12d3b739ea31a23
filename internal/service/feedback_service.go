package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type feedbackRepository interface {
	FindByPair(ctx context.Context, accomplishmentID, requestID string) (*models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) error
	Update(ctx context.Context, fb *models.Feedback) error
	List(ctx context.Context, requestID string, page, pageSize int) ([]models.Feedback, int, error)
}

type accomplishmentResolver interface {
	FindByID(ctx context.Context, id string) (*models.AccomplishmentReport, error)
}

// FeedbackService manages post-completion feedback. Rows key on the
// (accomplishment, request) pair and upsert on resubmission.
type FeedbackService struct {
	repo            feedbackRepository
	accomplishments accomplishmentResolver
	requests        requestResolver
	validator       *validator.Validate
	logger          *zap.Logger
	now             func() time.Time
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo feedbackRepository, accomplishments accomplishmentResolver, requests requestResolver, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{
		repo:            repo,
		accomplishments: accomplishments,
		requests:        requests,
		validator:       validate,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Upsert creates or replaces the feedback row for an accomplishment. Both
// the accomplishment and the request must exist. An omitted rating stays
// empty until the grace window after completion lapses, at which point it
// defaults to Outstanding.
func (s *FeedbackService) Upsert(ctx context.Context, req dto.FeedbackRequest) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	accomplishment, err := s.accomplishments.FindByID(ctx, req.AccomplishmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "accomplishment report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accomplishment report")
	}
	if _, err := s.requests.FindByID(ctx, req.RequestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "work request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load work request")
	}

	rating := s.resolveRating(req.Rating, accomplishment.DateCompleted)

	fb, err := s.repo.FindByPair(ctx, req.AccomplishmentID, req.RequestID)
	switch {
	case err == nil:
		fb.Rating = rating
		fb.FinalRemarks = req.FinalRemarks
		fb.Feedback = req.Feedback
		fb.DateStarted = accomplishment.DateStarted
		fb.DateCompleted = accomplishment.DateCompleted
		if err := s.repo.Update(ctx, fb); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update feedback")
		}
	case errors.Is(err, sql.ErrNoRows):
		fb = &models.Feedback{
			AccomplishmentID: req.AccomplishmentID,
			RequestID:        req.RequestID,
			Rating:           rating,
			FinalRemarks:     req.FinalRemarks,
			Feedback:         req.Feedback,
			DateStarted:      accomplishment.DateStarted,
			DateCompleted:    accomplishment.DateCompleted,
		}
		if err := s.repo.Create(ctx, fb); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
		}
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}

	return fb, nil
}

// GetByPair returns the feedback row for an accomplishment/request pair.
func (s *FeedbackService) GetByPair(ctx context.Context, accomplishmentID, requestID string) (*models.Feedback, error) {
	fb, err := s.repo.FindByPair(ctx, accomplishmentID, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}
	return fb, nil
}

// List returns feedback rows with pagination metadata.
func (s *FeedbackService) List(ctx context.Context, requestID string, page, pageSize int) ([]models.Feedback, *models.Pagination, error) {
	rows, total, err := s.repo.List(ctx, requestID, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return rows, normalizePagination(page, pageSize, total), nil
}

func (s *FeedbackService) resolveRating(rating *string, dateCompleted *time.Time) string {
	if rating != nil && *rating != "" {
		return *rating
	}
	// The rating defaults only once the grace window has fully elapsed;
	// at exactly the boundary the requester can still rate.
	if dateCompleted != nil && s.now().Sub(*dateCompleted) > models.AutoRatingGrace {
		return models.RatingOutstanding
	}
	return ""
}
