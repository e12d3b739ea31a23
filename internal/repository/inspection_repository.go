package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fms-api/internal/models"
)

// InspectionRepository provides database access for inspection reports.
type InspectionRepository struct {
	db *sqlx.DB
}

// NewInspectionRepository creates a new instance of InspectionRepository.
func NewInspectionRepository(db *sqlx.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

const inspectionColumns = `id, description, recommendation, inspected_by, is_archived, created_at, updated_at`

// Create inserts a new inspection report.
func (r *InspectionRepository) Create(ctx context.Context, report *models.InspectionReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	const query = `INSERT INTO inspection_reports (id, description, recommendation, inspected_by, is_archived, created_at, updated_at)
		VALUES (:id, :description, :recommendation, :inspected_by, :is_archived, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create inspection report: %w", err)
	}
	return nil
}

// FindByID returns an inspection report by identifier.
func (r *InspectionRepository) FindByID(ctx context.Context, id string) (*models.InspectionReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM inspection_reports WHERE id = $1 LIMIT 1`, inspectionColumns)
	var report models.InspectionReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find inspection report by id: %w", err)
	}
	return &report, nil
}

// List returns inspection reports with total count.
func (r *InspectionRepository) List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.InspectionReport, int, error) {
	baseQuery := `FROM inspection_reports WHERE 1=1`
	var conditions []string
	var args []interface{}

	if !includeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}
	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(description) LIKE $%d OR LOWER(recommendation) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", inspectionColumns, baseQuery, pageSize, offset)

	var reports []models.InspectionReport
	if err := r.db.SelectContext(ctx, &reports, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list inspection reports: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count inspection reports: %w", err)
	}

	return reports, total, nil
}

// Update overwrites the report fields.
func (r *InspectionRepository) Update(ctx context.Context, report *models.InspectionReport) error {
	report.UpdatedAt = time.Now().UTC()

	const query = `UPDATE inspection_reports SET description = :description, recommendation = :recommendation, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("update inspection report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive flips the soft-delete flag.
func (r *InspectionRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE inspection_reports SET is_archived = TRUE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive inspection report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
