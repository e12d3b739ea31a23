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

type mockLookupRepo struct {
	items    map[string]*models.LookupItem
	archived []string
}

func newMockLookupRepo() *mockLookupRepo {
	return &mockLookupRepo{items: make(map[string]*models.LookupItem)}
}

func (m *mockLookupRepo) List(ctx context.Context, kind models.LookupKind, filter models.LookupFilter) ([]models.LookupItem, int, error) {
	rows := make([]models.LookupItem, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, *item)
	}
	return rows, len(rows), nil
}

func (m *mockLookupRepo) FindByID(ctx context.Context, kind models.LookupKind, id string) (*models.LookupItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *item
	return &copied, nil
}

func (m *mockLookupRepo) ExistsActiveName(ctx context.Context, kind models.LookupKind, name string) (bool, error) {
	for _, item := range m.items {
		if item.Name == name && !item.IsArchived {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLookupRepo) Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error {
	if item.ID == "" {
		item.ID = "lk-" + item.Name
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockLookupRepo) Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockLookupRepo) Archive(ctx context.Context, kind models.LookupKind, id string) error {
	item, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.IsArchived = true
	m.archived = append(m.archived, id)
	return nil
}

func testLookupService(repo *mockLookupRepo) *LookupService {
	return NewLookupService(repo, validator.New(), zap.NewNop())
}

func TestLookupCreateAndGet(t *testing.T) {
	repo := newMockLookupRepo()
	svc := testLookupService(repo)

	item, err := svc.Create(context.Background(), models.LookupCategory, dto.LookupRequest{Name: "Plumbing"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), models.LookupCategory, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", got.Name)
}

func TestLookupCreateDuplicateActiveName(t *testing.T) {
	repo := newMockLookupRepo()
	repo.items["lk-1"] = &models.LookupItem{ID: "lk-1", Name: "Plumbing"}
	svc := testLookupService(repo)

	_, err := svc.Create(context.Background(), models.LookupCategory, dto.LookupRequest{Name: "Plumbing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLookupCreateAllowsReuseOfArchivedName(t *testing.T) {
	repo := newMockLookupRepo()
	repo.items["lk-1"] = &models.LookupItem{ID: "lk-1", Name: "Plumbing", IsArchived: true}
	svc := testLookupService(repo)

	_, err := svc.Create(context.Background(), models.LookupCategory, dto.LookupRequest{Name: "Plumbing"})
	require.NoError(t, err)
}

func TestLookupUnknownKind(t *testing.T) {
	svc := testLookupService(newMockLookupRepo())

	_, err := svc.Get(context.Background(), models.LookupKind("buildings"), "lk-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLookupArchive(t *testing.T) {
	repo := newMockLookupRepo()
	repo.items["lk-1"] = &models.LookupItem{ID: "lk-1", Name: "Plumbing"}
	svc := testLookupService(repo)

	require.NoError(t, svc.Archive(context.Background(), models.LookupCategory, "lk-1"))
	assert.True(t, repo.items["lk-1"].IsArchived)
}

func TestLookupArchiveNotFound(t *testing.T) {
	svc := testLookupService(newMockLookupRepo())

	err := svc.Archive(context.Background(), models.LookupCategory, "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
