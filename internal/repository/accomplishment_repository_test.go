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

func newAccomplishmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAccomplishmentRepositoryFindByRequestIDTakesNewest(t *testing.T) {
	db, mock, cleanup := newAccomplishmentRepoMock(t)
	defer cleanup()

	repo := NewAccomplishmentRepository(db)
	rows := sqlmock.NewRows([]string{"id", "request_id", "description", "date_started", "date_completed", "status", "remarks", "created_at", "updated_at"}).
		AddRow("acc-2", "req-1", "Rewired outlet", nil, nil, "Ongoing", "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 1")).
		WithArgs("req-1").
		WillReturnRows(rows)

	report, err := repo.FindByRequestID(context.Background(), "req-1")
	require.NoError(t, err)
	require.Equal(t, "acc-2", report.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccomplishmentRepositoryFindByRequestIDNoRows(t *testing.T) {
	db, mock, cleanup := newAccomplishmentRepoMock(t)
	defer cleanup()

	repo := NewAccomplishmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 1")).
		WithArgs("req-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByRequestID(context.Background(), "req-404")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAccomplishmentRepositoryUpdateStatusByRequestID(t *testing.T) {
	db, mock, cleanup := newAccomplishmentRepoMock(t)
	defer cleanup()

	repo := NewAccomplishmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accomplishment_reports SET status = $2")).
		WithArgs("req-1", models.StatusCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.UpdateStatusByRequestID(context.Background(), "req-1", models.StatusCompleted))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccomplishmentRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newAccomplishmentRepoMock(t)
	defer cleanup()

	repo := NewAccomplishmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accomplishment_reports")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	report := &models.AccomplishmentReport{
		RequestID:   "req-1",
		Description: "Replaced breaker",
		Status:      models.StatusOngoing,
	}
	require.NoError(t, repo.Create(context.Background(), report))
	require.NotEmpty(t, report.ID)
}
