package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fms-api/internal/models"
)

// SessionRepository persists login session rows.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.LoginDate.IsZero() {
		session.LoginDate = time.Now().UTC()
	}

	const query = `INSERT INTO sessions (id, user_id, session_code, ip_address, user_agent, login_date, logout_date)
		VALUES (:id, :user_id, :session_code, :ip_address, :user_agent, :login_date, :logout_date)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindByID returns a session by identifier.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	const query = `SELECT id, user_id, session_code, ip_address, user_agent, login_date, logout_date FROM sessions WHERE id = $1 LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return &session, nil
}

// FindByCode returns a session by its random session code.
func (r *SessionRepository) FindByCode(ctx context.Context, code string) (*models.Session, error) {
	const query = `SELECT id, user_id, session_code, ip_address, user_agent, login_date, logout_date FROM sessions WHERE session_code = $1 LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session by code: %w", err)
	}
	return &session, nil
}

// SetLogout stamps the logout date on a session.
func (r *SessionRepository) SetLogout(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE sessions SET logout_date = $2 WHERE id = $1 AND logout_date IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("set session logout: %w", err)
	}
	return nil
}

// ListByUser returns the sessions recorded for a user, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Session, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, user_id, session_code, ip_address, user_agent, login_date, logout_date FROM sessions WHERE user_id = $1 ORDER BY login_date DESC LIMIT %d`, limit)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
