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

// AccomplishmentRepository provides database access for accomplishment reports.
type AccomplishmentRepository struct {
	db *sqlx.DB
}

// NewAccomplishmentRepository creates a new instance of AccomplishmentRepository.
func NewAccomplishmentRepository(db *sqlx.DB) *AccomplishmentRepository {
	return &AccomplishmentRepository{db: db}
}

const accomplishmentColumns = `id, request_id, description, date_started, date_completed, status, remarks, created_at, updated_at`

// FindByRequestID returns the newest accomplishment row for a request.
// No unique constraint backs the one-row-per-request convention, so the
// newest row is taken when duplicates exist.
func (r *AccomplishmentRepository) FindByRequestID(ctx context.Context, requestID string) (*models.AccomplishmentReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM accomplishment_reports WHERE request_id = $1 ORDER BY created_at DESC LIMIT 1`, accomplishmentColumns)
	var report models.AccomplishmentReport
	if err := r.db.GetContext(ctx, &report, query, requestID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find accomplishment by request id: %w", err)
	}
	return &report, nil
}

// FindByID returns an accomplishment report by identifier.
func (r *AccomplishmentRepository) FindByID(ctx context.Context, id string) (*models.AccomplishmentReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM accomplishment_reports WHERE id = $1 LIMIT 1`, accomplishmentColumns)
	var report models.AccomplishmentReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find accomplishment by id: %w", err)
	}
	return &report, nil
}

// Create inserts a new accomplishment report.
func (r *AccomplishmentRepository) Create(ctx context.Context, report *models.AccomplishmentReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	const query = `INSERT INTO accomplishment_reports (id, request_id, description, date_started, date_completed, status, remarks, created_at, updated_at)
		VALUES (:id, :request_id, :description, :date_started, :date_completed, :status, :remarks, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create accomplishment report: %w", err)
	}
	return nil
}

// Update overwrites the report fields.
func (r *AccomplishmentRepository) Update(ctx context.Context, report *models.AccomplishmentReport) error {
	report.UpdatedAt = time.Now().UTC()

	const query = `UPDATE accomplishment_reports SET description = :description, date_started = :date_started, date_completed = :date_completed, status = :status, remarks = :remarks, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("update accomplishment report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatusByRequestID rewrites the status on every accomplishment row
// sharing the request id.
func (r *AccomplishmentRepository) UpdateStatusByRequestID(ctx context.Context, requestID string, status models.RequestStatus) error {
	const query = `UPDATE accomplishment_reports SET status = $2, updated_at = $3 WHERE request_id = $1`
	if _, err := r.db.ExecContext(ctx, query, requestID, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update accomplishment status by request id: %w", err)
	}
	return nil
}

// List returns accomplishment reports with total count.
func (r *AccomplishmentRepository) List(ctx context.Context, requestID string, page, pageSize int) ([]models.AccomplishmentReport, int, error) {
	baseQuery := `FROM accomplishment_reports WHERE 1=1`
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", accomplishmentColumns, baseQuery, pageSize, offset)

	var reports []models.AccomplishmentReport
	if err := r.db.SelectContext(ctx, &reports, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list accomplishment reports: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count accomplishment reports: %w", err)
	}

	return reports, total, nil
}
