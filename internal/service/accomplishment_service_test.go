package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type mockAccomplishmentRepo struct {
	byRequest      map[string]*models.AccomplishmentReport
	byID           map[string]*models.AccomplishmentReport
	created        []*models.AccomplishmentReport
	updated        []*models.AccomplishmentReport
	cascadedStatus map[string]models.RequestStatus
}

func newMockAccomplishmentRepo() *mockAccomplishmentRepo {
	return &mockAccomplishmentRepo{
		byRequest:      make(map[string]*models.AccomplishmentReport),
		byID:           make(map[string]*models.AccomplishmentReport),
		cascadedStatus: make(map[string]models.RequestStatus),
	}
}

func (m *mockAccomplishmentRepo) FindByRequestID(ctx context.Context, requestID string) (*models.AccomplishmentReport, error) {
	report, ok := m.byRequest[requestID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *report
	return &copied, nil
}

func (m *mockAccomplishmentRepo) FindByID(ctx context.Context, id string) (*models.AccomplishmentReport, error) {
	report, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *report
	return &copied, nil
}

func (m *mockAccomplishmentRepo) Create(ctx context.Context, report *models.AccomplishmentReport) error {
	if report.ID == "" {
		report.ID = "acc-" + report.RequestID
	}
	m.created = append(m.created, report)
	m.byRequest[report.RequestID] = report
	m.byID[report.ID] = report
	return nil
}

func (m *mockAccomplishmentRepo) Update(ctx context.Context, report *models.AccomplishmentReport) error {
	if _, ok := m.byID[report.ID]; !ok {
		return sql.ErrNoRows
	}
	m.updated = append(m.updated, report)
	m.byID[report.ID] = report
	m.byRequest[report.RequestID] = report
	return nil
}

func (m *mockAccomplishmentRepo) UpdateStatusByRequestID(ctx context.Context, requestID string, status models.RequestStatus) error {
	m.cascadedStatus[requestID] = status
	return nil
}

func (m *mockAccomplishmentRepo) List(ctx context.Context, requestID string, page, pageSize int) ([]models.AccomplishmentReport, int, error) {
	rows := make([]models.AccomplishmentReport, 0, len(m.byID))
	for _, report := range m.byID {
		rows = append(rows, *report)
	}
	return rows, len(rows), nil
}

func testAccomplishmentService(repo *mockAccomplishmentRepo, requests *mockWorkRequestRepo) *AccomplishmentService {
	return NewAccomplishmentService(repo, requests, validator.New(), zap.NewNop())
}

func TestAccomplishmentUpsertCreatesAndCascades(t *testing.T) {
	repo := newMockAccomplishmentRepo()
	requests := newMockWorkRequestRepo()
	requests.byID["wr-1"] = &models.WorkRequest{ID: "wr-1", Status: models.StatusOngoing}
	svc := testAccomplishmentService(repo, requests)

	report, err := svc.Upsert(context.Background(), dto.AccomplishmentRequest{
		RequestID:   "wr-1",
		Description: "Replaced faucet washer",
		Status:      string(models.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, models.StatusCompleted, report.Status)
	assert.Equal(t, models.StatusCompleted, repo.cascadedStatus["wr-1"], "sibling rows should receive the status")
	assert.Equal(t, models.StatusCompleted, requests.statusSets["wr-1"], "parent request should receive the status")
}

func TestAccomplishmentUpsertDefaultsStatusToCompleted(t *testing.T) {
	repo := newMockAccomplishmentRepo()
	requests := newMockWorkRequestRepo()
	requests.byID["wr-1"] = &models.WorkRequest{ID: "wr-1", Status: models.StatusOngoing}
	svc := testAccomplishmentService(repo, requests)

	report, err := svc.Upsert(context.Background(), dto.AccomplishmentRequest{
		RequestID:   "wr-1",
		Description: "Replaced pump",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, report.Status)
	assert.Equal(t, models.StatusCompleted, requests.statusSets["wr-1"])
}

func TestAccomplishmentUpsertReplacesExistingRow(t *testing.T) {
	repo := newMockAccomplishmentRepo()
	existing := &models.AccomplishmentReport{ID: "acc-1", RequestID: "wr-1", Description: "old", Status: models.StatusOngoing}
	repo.byRequest["wr-1"] = existing
	repo.byID["acc-1"] = existing
	requests := newMockWorkRequestRepo()
	requests.byID["wr-1"] = &models.WorkRequest{ID: "wr-1", Status: models.StatusOngoing}
	svc := testAccomplishmentService(repo, requests)

	report, err := svc.Upsert(context.Background(), dto.AccomplishmentRequest{
		RequestID:   "wr-1",
		Description: "new description",
		Status:      string(models.StatusForInspection),
	})
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "acc-1", report.ID)
	assert.Equal(t, "new description", report.Description)
	assert.Equal(t, models.StatusForInspection, requests.statusSets["wr-1"])
}

func TestAccomplishmentUpsertUnknownRequest(t *testing.T) {
	svc := testAccomplishmentService(newMockAccomplishmentRepo(), newMockWorkRequestRepo())

	_, err := svc.Upsert(context.Background(), dto.AccomplishmentRequest{
		RequestID:   "missing",
		Description: "work",
		Status:      string(models.StatusCompleted),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAccomplishmentUpsertUnknownStatus(t *testing.T) {
	requests := newMockWorkRequestRepo()
	requests.byID["wr-1"] = &models.WorkRequest{ID: "wr-1"}
	svc := testAccomplishmentService(newMockAccomplishmentRepo(), requests)

	_, err := svc.Upsert(context.Background(), dto.AccomplishmentRequest{
		RequestID:   "wr-1",
		Description: "work",
		Status:      "Almost There",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAccomplishmentGetByRequestNotFound(t *testing.T) {
	svc := testAccomplishmentService(newMockAccomplishmentRepo(), newMockWorkRequestRepo())

	_, err := svc.GetByRequest(context.Background(), "wr-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
