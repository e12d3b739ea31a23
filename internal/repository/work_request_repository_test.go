package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fms-api/internal/models"
)

func newWorkRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestWorkRequestRepositoryMaxControlSeq(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(CAST(SPLIT_PART(control_no, '-', 2) AS INTEGER)), 0) FROM work_requests")).
		WithArgs("2026-%").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))

	max, err := repo.MaxControlSeq(context.Background(), "2026")
	require.NoError(t, err)
	require.Equal(t, 41, max)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkRequestRepositoryMaxControlSeqEmptyYear(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(CAST(SPLIT_PART(control_no, '-', 2) AS INTEGER)), 0) FROM work_requests")).
		WithArgs("2027-%").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	max, err := repo.MaxControlSeq(context.Background(), "2027")
	require.NoError(t, err)
	require.Equal(t, 0, max)
}

func TestWorkRequestRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO work_requests")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := &models.WorkRequest{
		ControlNo:    "2026-001",
		Description:  "Busted light",
		OfficeName:   "Registrar",
		LocationName: "Main Bldg",
		CategoryName: "Electrical",
		FiscalYear:   "2026",
		Status:       models.StatusPending,
		RequestedBy:  "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), req))
	require.NotEmpty(t, req.ID)

	rows := sqlmock.NewRows([]string{"id", "control_no", "description", "office_name", "location_name", "category_name", "area", "overtime", "fiscal_year", "file_path", "status", "requested_by", "is_archived", "created_at", "updated_at"}).
		AddRow(req.ID, req.ControlNo, req.Description, req.OfficeName, req.LocationName, req.CategoryName, "", false, req.FiscalYear, nil, req.Status, req.RequestedBy, false, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, control_no, description")).
		WithArgs(req.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, "2026-001", found.ControlNo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkRequestRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	rows := sqlmock.NewRows([]string{"id", "control_no", "description", "office_name", "location_name", "category_name", "area", "overtime", "fiscal_year", "file_path", "status", "requested_by", "is_archived", "created_at", "updated_at"}).
		AddRow("req-1", "2026-001", "Leak", "Registrar", "Main Bldg", "Plumbing", "", false, "2026", nil, "Pending", "user-1", false, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, control_no, description")).
		WithArgs("Pending", "2026").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("Pending", "2026").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	requests, total, err := repo.List(context.Background(), models.WorkRequestFilter{
		Status:     "Pending",
		FiscalYear: "2026",
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, 1, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkRequestRepositoryUpdateStatusMissingRow(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE work_requests SET status")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.StatusOngoing)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWorkRequestRepositoryArchive(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE work_requests SET is_archived = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Archive(context.Background(), "req-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkRequestRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newWorkRequestRepoMock(t)
	defer cleanup()

	repo := NewWorkRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count FROM work_requests")).
		WithArgs("2026").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Completed", 3).
			AddRow("Pending", 5))

	counts, err := repo.CountByStatus(context.Background(), "2026")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "Completed", counts[0].Status)
	require.Equal(t, 3, counts[0].Count)
}
