package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type mockFeedbackRepo struct {
	byPair  map[string]*models.Feedback
	created []*models.Feedback
	updated []*models.Feedback
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{byPair: make(map[string]*models.Feedback)}
}

func pairKey(accomplishmentID, requestID string) string {
	return accomplishmentID + "/" + requestID
}

func (m *mockFeedbackRepo) FindByPair(ctx context.Context, accomplishmentID, requestID string) (*models.Feedback, error) {
	fb, ok := m.byPair[pairKey(accomplishmentID, requestID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *fb
	return &copied, nil
}

func (m *mockFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = "fb-" + fb.RequestID
	}
	m.created = append(m.created, fb)
	m.byPair[pairKey(fb.AccomplishmentID, fb.RequestID)] = fb
	return nil
}

func (m *mockFeedbackRepo) Update(ctx context.Context, fb *models.Feedback) error {
	m.updated = append(m.updated, fb)
	m.byPair[pairKey(fb.AccomplishmentID, fb.RequestID)] = fb
	return nil
}

func (m *mockFeedbackRepo) List(ctx context.Context, requestID string, page, pageSize int) ([]models.Feedback, int, error) {
	rows := make([]models.Feedback, 0, len(m.byPair))
	for _, fb := range m.byPair {
		rows = append(rows, *fb)
	}
	return rows, len(rows), nil
}

func testFeedbackService(repo *mockFeedbackRepo, accomplishments *mockAccomplishmentRepo, requests *mockWorkRequestRepo, now time.Time) *FeedbackService {
	svc := NewFeedbackService(repo, accomplishments, requests, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func feedbackFixtures(dateCompleted *time.Time) (*mockAccomplishmentRepo, *mockWorkRequestRepo) {
	accomplishments := newMockAccomplishmentRepo()
	accomplishments.byID["acc-1"] = &models.AccomplishmentReport{ID: "acc-1", RequestID: "wr-1", DateCompleted: dateCompleted}
	requests := newMockWorkRequestRepo()
	requests.byID["wr-1"] = &models.WorkRequest{ID: "wr-1", Status: models.StatusCompleted}
	return accomplishments, requests
}

func TestFeedbackUpsertKeepsExplicitRating(t *testing.T) {
	now := time.Now().UTC()
	completed := now.Add(-100 * time.Hour)
	accomplishments, requests := feedbackFixtures(&completed)
	repo := newMockFeedbackRepo()
	svc := testFeedbackService(repo, accomplishments, requests, now)

	rating := "Satisfactory"
	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
		Rating:           &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, "Satisfactory", fb.Rating)
}

func TestFeedbackUpsertAutoRatesAfterGrace(t *testing.T) {
	now := time.Now().UTC()
	completed := now.Add(-(models.AutoRatingGrace + time.Hour))
	accomplishments, requests := feedbackFixtures(&completed)
	repo := newMockFeedbackRepo()
	svc := testFeedbackService(repo, accomplishments, requests, now)

	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RatingOutstanding, fb.Rating)
}

func TestFeedbackUpsertLeavesRatingEmptyWithinGrace(t *testing.T) {
	now := time.Now().UTC()
	completed := now.Add(-(models.AutoRatingGrace - time.Hour))
	accomplishments, requests := feedbackFixtures(&completed)
	repo := newMockFeedbackRepo()
	svc := testFeedbackService(repo, accomplishments, requests, now)

	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
	})
	require.NoError(t, err)
	assert.Empty(t, fb.Rating)
}

func TestFeedbackUpsertNoAutoRatingAtExactGraceBoundary(t *testing.T) {
	now := time.Now().UTC()
	completed := now.Add(-models.AutoRatingGrace)
	accomplishments, requests := feedbackFixtures(&completed)
	repo := newMockFeedbackRepo()
	svc := testFeedbackService(repo, accomplishments, requests, now)

	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
	})
	require.NoError(t, err)
	assert.Empty(t, fb.Rating)
}

func TestFeedbackUpsertNoCompletionDateNoAutoRating(t *testing.T) {
	now := time.Now().UTC()
	accomplishments, requests := feedbackFixtures(nil)
	repo := newMockFeedbackRepo()
	svc := testFeedbackService(repo, accomplishments, requests, now)

	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
	})
	require.NoError(t, err)
	assert.Empty(t, fb.Rating)
}

func TestFeedbackUpsertReplacesExistingRow(t *testing.T) {
	now := time.Now().UTC()
	completed := now.Add(-time.Hour)
	accomplishments, requests := feedbackFixtures(&completed)
	repo := newMockFeedbackRepo()
	repo.byPair[pairKey("acc-1", "wr-1")] = &models.Feedback{ID: "fb-1", AccomplishmentID: "acc-1", RequestID: "wr-1", Feedback: "old"}
	svc := testFeedbackService(repo, accomplishments, requests, now)

	fb, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
		Feedback:         "new comment",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "fb-1", fb.ID)
	assert.Equal(t, "new comment", fb.Feedback)
}

func TestFeedbackUpsertUnknownAccomplishment(t *testing.T) {
	now := time.Now().UTC()
	requests := newMockWorkRequestRepo()
	svc := testFeedbackService(newMockFeedbackRepo(), newMockAccomplishmentRepo(), requests, now)

	_, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "missing",
		RequestID:        "wr-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFeedbackUpsertUnknownRequest(t *testing.T) {
	now := time.Now().UTC()
	accomplishments := newMockAccomplishmentRepo()
	accomplishments.byID["acc-1"] = &models.AccomplishmentReport{ID: "acc-1", RequestID: "wr-1"}
	svc := testFeedbackService(newMockFeedbackRepo(), accomplishments, newMockWorkRequestRepo(), now)

	_, err := svc.Upsert(context.Background(), dto.FeedbackRequest{
		AccomplishmentID: "acc-1",
		RequestID:        "wr-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
