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

type mockWorkRequestRepo struct {
	maxSeq     int
	maxSeqErr  error
	created    []*models.WorkRequest
	byID       map[string]*models.WorkRequest
	statusSets map[string]models.RequestStatus
	archived   []string
}

func newMockWorkRequestRepo() *mockWorkRequestRepo {
	return &mockWorkRequestRepo{byID: make(map[string]*models.WorkRequest), statusSets: make(map[string]models.RequestStatus)}
}

func (m *mockWorkRequestRepo) MaxControlSeq(ctx context.Context, year string) (int, error) {
	if m.maxSeqErr != nil {
		return 0, m.maxSeqErr
	}
	return m.maxSeq, nil
}

func (m *mockWorkRequestRepo) Create(ctx context.Context, req *models.WorkRequest) error {
	if req.ID == "" {
		req.ID = "wr-" + req.ControlNo
	}
	m.created = append(m.created, req)
	m.byID[req.ID] = req
	return nil
}

func (m *mockWorkRequestRepo) FindByID(ctx context.Context, id string) (*models.WorkRequest, error) {
	req, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (m *mockWorkRequestRepo) List(ctx context.Context, filter models.WorkRequestFilter) ([]models.WorkRequest, int, error) {
	rows := make([]models.WorkRequest, 0, len(m.byID))
	for _, req := range m.byID {
		rows = append(rows, *req)
	}
	return rows, len(rows), nil
}

func (m *mockWorkRequestRepo) Update(ctx context.Context, req *models.WorkRequest) error {
	if _, ok := m.byID[req.ID]; !ok {
		return sql.ErrNoRows
	}
	m.byID[req.ID] = req
	return nil
}

func (m *mockWorkRequestRepo) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	m.statusSets[id] = status
	m.byID[id].Status = status
	return nil
}

func (m *mockWorkRequestRepo) Archive(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	m.archived = append(m.archived, id)
	return nil
}

type mockLookupChecker struct {
	inactive map[string]bool
}

func (m *mockLookupChecker) ExistsActiveName(ctx context.Context, kind models.LookupKind, name string) (bool, error) {
	if m.inactive[name] {
		return false, nil
	}
	return true, nil
}

type mockStorage struct {
	saved map[string][]byte
}

func (m *mockStorage) Save(filename string, data []byte) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[filename] = data
	return filename, nil
}

func testWorkRequestService(repo *mockWorkRequestRepo, lookups *mockLookupChecker) (*WorkRequestService, *mockAuditRepo) {
	if lookups == nil {
		lookups = &mockLookupChecker{}
	}
	audit := &mockAuditRepo{}
	svc := NewWorkRequestService(repo, lookups, &mockStorage{}, audit, validator.New(), zap.NewNop(), UploadPolicy{
		MaxFileSizeBytes: 5 << 20,
		AllowedMIMEs:     []string{"image/jpeg", "image/png"},
	})
	return svc, audit
}

func validWorkRequest() dto.CreateWorkRequestRequest {
	return dto.CreateWorkRequestRequest{
		Description:  "Leaking faucet at the second floor restroom",
		OfficeName:   "Records Office",
		LocationName: "Main Building",
		CategoryName: "Plumbing",
		Area:         "Second Floor",
		FiscalYear:   "2026",
	}
}

func TestWorkRequestCreateAssignsControlNumber(t *testing.T) {
	repo := newMockWorkRequestRepo()
	repo.maxSeq = 41
	svc, audit := testWorkRequestService(repo, nil)

	created, err := svc.Create(context.Background(), validWorkRequest(), nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2026-042", created.ControlNo)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "u1", created.RequestedBy)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionRequestCreate, audit.logs[0].Action)
}

func TestWorkRequestCreateFirstOfYear(t *testing.T) {
	repo := newMockWorkRequestRepo()
	svc, _ := testWorkRequestService(repo, nil)

	created, err := svc.Create(context.Background(), validWorkRequest(), nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2026-001", created.ControlNo)
}

func TestWorkRequestCreateSequencePadsBeyondThreeDigits(t *testing.T) {
	repo := newMockWorkRequestRepo()
	repo.maxSeq = 999
	svc, _ := testWorkRequestService(repo, nil)

	created, err := svc.Create(context.Background(), validWorkRequest(), nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2026-1000", created.ControlNo)
}

func TestWorkRequestCreateRejectsArchivedLookup(t *testing.T) {
	repo := newMockWorkRequestRepo()
	lookups := &mockLookupChecker{inactive: map[string]bool{"Plumbing": true}}
	svc, _ := testWorkRequestService(repo, lookups)

	_, err := svc.Create(context.Background(), validWorkRequest(), nil, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestWorkRequestCreateRejectsOversizedUpload(t *testing.T) {
	svc, _ := testWorkRequestService(newMockWorkRequestRepo(), nil)

	upload := &dto.FileUpload{Filename: "photo.jpg", ContentType: "image/jpeg", Size: 6 << 20}
	_, err := svc.Create(context.Background(), validWorkRequest(), upload, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWorkRequestCreateRejectsUnknownContentType(t *testing.T) {
	svc, _ := testWorkRequestService(newMockWorkRequestRepo(), nil)

	upload := &dto.FileUpload{Filename: "payload.exe", ContentType: "application/octet-stream", Size: 100, Data: []byte("x")}
	_, err := svc.Create(context.Background(), validWorkRequest(), upload, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWorkRequestCreateStoresUpload(t *testing.T) {
	repo := newMockWorkRequestRepo()
	svc, _ := testWorkRequestService(repo, nil)

	upload := &dto.FileUpload{Filename: "photo.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("abc")}
	created, err := svc.Create(context.Background(), validWorkRequest(), upload, "u1")
	require.NoError(t, err)
	require.NotNil(t, created.FilePath)
	assert.Contains(t, *created.FilePath, "requests/")
}

func TestWorkRequestUpdateUnknownStatus(t *testing.T) {
	svc, _ := testWorkRequestService(newMockWorkRequestRepo(), nil)

	req := dto.UpdateWorkRequestRequest{
		Description:  "desc",
		OfficeName:   "Records Office",
		LocationName: "Main Building",
		CategoryName: "Plumbing",
		FiscalYear:   "2026",
		Status:       "Half Done",
	}
	_, err := svc.Update(context.Background(), "wr-1", req, nil, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWorkRequestUpdateNotFound(t *testing.T) {
	svc, _ := testWorkRequestService(newMockWorkRequestRepo(), nil)

	req := dto.UpdateWorkRequestRequest{
		Description:  "desc",
		OfficeName:   "Records Office",
		LocationName: "Main Building",
		CategoryName: "Plumbing",
		FiscalYear:   "2026",
		Status:       string(models.StatusOngoing),
	}
	_, err := svc.Update(context.Background(), "missing", req, nil, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestWorkRequestArchive(t *testing.T) {
	repo := newMockWorkRequestRepo()
	repo.byID["wr-1"] = &models.WorkRequest{ID: "wr-1", ControlNo: "2026-001"}
	svc, audit := testWorkRequestService(repo, nil)

	require.NoError(t, svc.Archive(context.Background(), "wr-1", "u1"))
	assert.Contains(t, repo.archived, "wr-1")
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionRequestArchive, audit.logs[0].Action)
}

func TestWorkRequestListRejectsUnknownStatusFilter(t *testing.T) {
	svc, _ := testWorkRequestService(newMockWorkRequestRepo(), nil)

	_, _, err := svc.List(context.Background(), models.WorkRequestFilter{Status: "Bogus"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
