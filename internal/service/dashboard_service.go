package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type dashboardRequestSource interface {
	CountByStatus(ctx context.Context, fiscalYear string) ([]dto.StatusCount, error)
	CountByCategory(ctx context.Context, fiscalYear string) ([]dto.CategoryCount, error)
}

type dashboardFeedbackSource interface {
	RatingCounts(ctx context.Context) (map[string]int, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DashboardService aggregates work-request counts behind a short-lived
// cache. Stale summaries within the TTL are acceptable.
type DashboardService struct {
	requests dashboardRequestSource
	feedback dashboardFeedbackSource
	cache    summaryCache
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(requests dashboardRequestSource, feedback dashboardFeedbackSource, cache summaryCache, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{requests: requests, feedback: feedback, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

func dashboardCacheKey(fiscalYear string) string {
	return fmt.Sprintf("dashboard:summary:%s", fiscalYear)
}

// Summary returns per-status and per-category counts for a fiscal year,
// serving from cache when available.
func (s *DashboardService) Summary(ctx context.Context, fiscalYear string) (*dto.DashboardSummaryResponse, error) {
	if fiscalYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fiscalYear is required")
	}

	key := dashboardCacheKey(fiscalYear)
	if s.cache != nil {
		var cached dto.DashboardSummaryResponse
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	byStatus, err := s.requests.CountByStatus(ctx, fiscalYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate status counts")
	}
	byCategory, err := s.requests.CountByCategory(ctx, fiscalYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate category counts")
	}
	ratings, err := s.feedback.RatingCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate feedback ratings")
	}

	total := 0
	for _, row := range byStatus {
		total += row.Count
	}
	feedbackTotal := 0
	for _, count := range ratings {
		feedbackTotal += count
	}

	summary := &dto.DashboardSummaryResponse{
		FiscalYear: fiscalYear,
		Total:      total,
		ByStatus:   byStatus,
		ByCategory: byCategory,
		Feedback:   dto.FeedbackRatingStats{Total: feedbackTotal, Ratings: ratings},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary for a fiscal year.
func (s *DashboardService) Invalidate(ctx context.Context, fiscalYear string) {
	if s.cache == nil || fiscalYear == "" {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey(fiscalYear)); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
