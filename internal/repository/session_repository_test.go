package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fms-api/internal/models"
)

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSessionRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{
		UserID:      "user-1",
		SessionCode: "code-abc",
		IPAddress:   "127.0.0.1",
		LoginDate:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), session))
	require.NotEmpty(t, session.ID)

	rows := sqlmock.NewRows([]string{"id", "user_id", "session_code", "ip_address", "user_agent", "login_date", "logout_date"}).
		AddRow(session.ID, "user-1", "code-abc", "127.0.0.1", "", session.LoginDate, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, session_code")).
		WithArgs(session.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, "user-1", found.UserID)
	require.Nil(t, found.LogoutDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositorySetLogoutOnlyOnce(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	// The WHERE clause skips rows already stamped.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET logout_date = $2 WHERE id = $1 AND logout_date IS NULL")).
		WithArgs("sess-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetLogout(context.Background(), "sess-1", time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}
