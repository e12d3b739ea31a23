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

// FeedbackRepository provides database access for feedback records.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

const feedbackColumns = `id, accomplishment_id, request_id, rating, final_remarks, feedback, date_started, date_completed, created_at, updated_at`

// FindByPair returns the feedback row keyed by accomplishment and request.
func (r *FeedbackRepository) FindByPair(ctx context.Context, accomplishmentID, requestID string) (*models.Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM feedbacks WHERE accomplishment_id = $1 AND request_id = $2 ORDER BY created_at DESC LIMIT 1`, feedbackColumns)
	var fb models.Feedback
	if err := r.db.GetContext(ctx, &fb, query, accomplishmentID, requestID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback by pair: %w", err)
	}
	return &fb, nil
}

// Create inserts a new feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = now
	}
	fb.UpdatedAt = now

	const query = `INSERT INTO feedbacks (id, accomplishment_id, request_id, rating, final_remarks, feedback, date_started, date_completed, created_at, updated_at)
		VALUES (:id, :accomplishment_id, :request_id, :rating, :final_remarks, :feedback, :date_started, :date_completed, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// Update overwrites the feedback fields.
func (r *FeedbackRepository) Update(ctx context.Context, fb *models.Feedback) error {
	fb.UpdatedAt = time.Now().UTC()

	const query = `UPDATE feedbacks SET rating = :rating, final_remarks = :final_remarks, feedback = :feedback, date_started = :date_started, date_completed = :date_completed, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, fb)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns feedback rows with total count, optionally scoped to a request.
func (r *FeedbackRepository) List(ctx context.Context, requestID string, page, pageSize int) ([]models.Feedback, int, error) {
	baseQuery := `FROM feedbacks WHERE 1=1`
	var args []interface{}

	if requestID != "" {
		baseQuery += fmt.Sprintf(" AND request_id = $%d", len(args)+1)
		args = append(args, requestID)
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", feedbackColumns, baseQuery, pageSize, offset)

	var feedbacks []models.Feedback
	if err := r.db.SelectContext(ctx, &feedbacks, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list feedbacks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count feedbacks: %w", err)
	}

	return feedbacks, total, nil
}

// RatingCounts aggregates feedback rows per rating value.
func (r *FeedbackRepository) RatingCounts(ctx context.Context) (map[string]int, error) {
	const query = `SELECT rating, COUNT(*) AS count FROM feedbacks GROUP BY rating`
	rows := []struct {
		Rating string `db:"rating"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count feedback ratings: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}
