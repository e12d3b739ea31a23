package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type mockDashboardSource struct {
	statusCalls   int
	categoryCalls int
}

func (m *mockDashboardSource) CountByStatus(ctx context.Context, fiscalYear string) ([]dto.StatusCount, error) {
	m.statusCalls++
	return []dto.StatusCount{{Status: "Pending", Count: 3}, {Status: "Completed", Count: 7}}, nil
}

func (m *mockDashboardSource) CountByCategory(ctx context.Context, fiscalYear string) ([]dto.CategoryCount, error) {
	m.categoryCalls++
	return []dto.CategoryCount{{Category: "Plumbing", Count: 10}}, nil
}

type mockRatingSource struct{}

func (m *mockRatingSource) RatingCounts(ctx context.Context) (map[string]int, error) {
	return map[string]int{"Outstanding": 4, "Satisfactory": 2}, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestDashboardSummaryAggregates(t *testing.T) {
	source := &mockDashboardSource{}
	svc := NewDashboardService(source, &mockRatingSource{}, newMemoryCache(), zap.NewNop(), time.Minute)

	summary, err := svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
	assert.Len(t, summary.ByStatus, 2)
	assert.Equal(t, 6, summary.Feedback.Total)
	assert.Equal(t, 4, summary.Feedback.Ratings["Outstanding"])
}

func TestDashboardSummaryServedFromCache(t *testing.T) {
	source := &mockDashboardSource{}
	cache := newMemoryCache()
	svc := NewDashboardService(source, &mockRatingSource{}, cache, zap.NewNop(), time.Minute)

	_, err := svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	_, err = svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	assert.Equal(t, 1, source.statusCalls, "second call should hit the cache")
}

func TestDashboardSummaryRequiresFiscalYear(t *testing.T) {
	svc := NewDashboardService(&mockDashboardSource{}, &mockRatingSource{}, nil, zap.NewNop(), time.Minute)

	_, err := svc.Summary(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDashboardInvalidateDropsCache(t *testing.T) {
	source := &mockDashboardSource{}
	cache := newMemoryCache()
	svc := NewDashboardService(source, &mockRatingSource{}, cache, zap.NewNop(), time.Minute)

	_, err := svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	svc.Invalidate(context.Background(), "2026")
	_, err = svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	assert.Equal(t, 2, source.statusCalls)
}

func TestDashboardSummaryWorksWithoutCache(t *testing.T) {
	source := &mockDashboardSource{}
	svc := NewDashboardService(source, &mockRatingSource{}, nil, zap.NewNop(), time.Minute)

	summary, err := svc.Summary(context.Background(), "2026")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
}
