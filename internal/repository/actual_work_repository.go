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

// ActualWorkRepository provides database access for actual-work reports.
type ActualWorkRepository struct {
	db *sqlx.DB
}

// NewActualWorkRepository creates a new instance of ActualWorkRepository.
func NewActualWorkRepository(db *sqlx.DB) *ActualWorkRepository {
	return &ActualWorkRepository{db: db}
}

const actualWorkColumns = `id, recommended_action, remarks, control_no, control_request_id, is_archived, created_at, updated_at`

// Create inserts a new actual-work report.
func (r *ActualWorkRepository) Create(ctx context.Context, report *models.ActualWorkReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	const query = `INSERT INTO actual_work_reports (id, recommended_action, remarks, control_no, control_request_id, is_archived, created_at, updated_at)
		VALUES (:id, :recommended_action, :remarks, :control_no, :control_request_id, :is_archived, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create actual work report: %w", err)
	}
	return nil
}

// FindByID returns an actual-work report by identifier.
func (r *ActualWorkRepository) FindByID(ctx context.Context, id string) (*models.ActualWorkReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM actual_work_reports WHERE id = $1 LIMIT 1`, actualWorkColumns)
	var report models.ActualWorkReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find actual work report by id: %w", err)
	}
	return &report, nil
}

// List returns actual-work reports with total count.
func (r *ActualWorkRepository) List(ctx context.Context, search string, includeArchived bool, page, pageSize int) ([]models.ActualWorkReport, int, error) {
	baseQuery := `FROM actual_work_reports WHERE 1=1`
	var conditions []string
	var args []interface{}

	if !includeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}
	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(control_no) LIKE $%d OR LOWER(recommended_action) LIKE $%d OR LOWER(remarks) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", actualWorkColumns, baseQuery, pageSize, offset)

	var reports []models.ActualWorkReport
	if err := r.db.SelectContext(ctx, &reports, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list actual work reports: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count actual work reports: %w", err)
	}

	return reports, total, nil
}

// Update overwrites the report fields.
func (r *ActualWorkRepository) Update(ctx context.Context, report *models.ActualWorkReport) error {
	report.UpdatedAt = time.Now().UTC()

	const query = `UPDATE actual_work_reports SET recommended_action = :recommended_action, remarks = :remarks, control_no = :control_no, control_request_id = :control_request_id, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("update actual work report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive flips the soft-delete flag.
func (r *ActualWorkRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE actual_work_reports SET is_archived = TRUE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive actual work report: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
