package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
)

// WorkRequestRepository provides database access for work requests.
type WorkRequestRepository struct {
	db *sqlx.DB
}

// NewWorkRequestRepository creates a new instance of WorkRequestRepository.
func NewWorkRequestRepository(db *sqlx.DB) *WorkRequestRepository {
	return &WorkRequestRepository{db: db}
}

const workRequestColumns = `id, control_no, description, office_name, location_name, category_name, area, overtime, fiscal_year, file_path, status, requested_by, is_archived, created_at, updated_at`

// MaxControlSeq returns the highest control-number sequence already issued
// for the given year. Read-then-write: two concurrent submissions can both
// observe the same maximum and collide.
func (r *WorkRequestRepository) MaxControlSeq(ctx context.Context, year string) (int, error) {
	const query = `SELECT COALESCE(MAX(CAST(SPLIT_PART(control_no, '-', 2) AS INTEGER)), 0) FROM work_requests WHERE control_no LIKE $1`
	var max int
	if err := r.db.GetContext(ctx, &max, query, year+"-%"); err != nil {
		return 0, fmt.Errorf("max control seq: %w", err)
	}
	return max, nil
}

// Create inserts a new work request.
func (r *WorkRequestRepository) Create(ctx context.Context, req *models.WorkRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now

	const query = `INSERT INTO work_requests (id, control_no, description, office_name, location_name, category_name, area, overtime, fiscal_year, file_path, status, requested_by, is_archived, created_at, updated_at)
		VALUES (:id, :control_no, :description, :office_name, :location_name, :category_name, :area, :overtime, :fiscal_year, :file_path, :status, :requested_by, :is_archived, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create work request: %w", err)
	}
	return nil
}

// FindByID returns a work request by identifier.
func (r *WorkRequestRepository) FindByID(ctx context.Context, id string) (*models.WorkRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_requests WHERE id = $1 LIMIT 1`, workRequestColumns)
	var req models.WorkRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find work request by id: %w", err)
	}
	return &req, nil
}

// List returns work requests based on filters with total count.
func (r *WorkRequestRepository) List(ctx context.Context, filter models.WorkRequestFilter) ([]models.WorkRequest, int, error) {
	baseQuery := `FROM work_requests WHERE 1=1`
	var conditions []string
	var args []interface{}

	if !filter.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.LocationName != "" {
		conditions = append(conditions, fmt.Sprintf("location_name = $%d", len(args)+1))
		args = append(args, filter.LocationName)
	}
	if filter.CategoryName != "" {
		conditions = append(conditions, fmt.Sprintf("category_name = $%d", len(args)+1))
		args = append(args, filter.CategoryName)
	}
	if filter.DivisionName != "" {
		conditions = append(conditions, fmt.Sprintf("requested_by IN (SELECT id FROM users WHERE division_name = $%d)", len(args)+1))
		args = append(args, filter.DivisionName)
	}
	if filter.FiscalYear != "" {
		conditions = append(conditions, fmt.Sprintf("fiscal_year = $%d", len(args)+1))
		args = append(args, filter.FiscalYear)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(control_no) LIKE $%d OR LOWER(description) LIKE $%d OR LOWER(area) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"control_no": true,
		"created_at": true,
		"updated_at": true,
		"status":     true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", workRequestColumns, baseQuery, sortBy, sortOrder, pageSize, offset)

	var requests []models.WorkRequest
	if err := r.db.SelectContext(ctx, &requests, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list work requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count work requests: %w", err)
	}

	return requests, total, nil
}

// Update overwrites all mutable fields. Last writer wins; there is no
// version check.
func (r *WorkRequestRepository) Update(ctx context.Context, req *models.WorkRequest) error {
	req.UpdatedAt = time.Now().UTC()

	const query = `UPDATE work_requests SET description = :description, office_name = :office_name, location_name = :location_name, category_name = :category_name, area = :area, overtime = :overtime, fiscal_year = :fiscal_year, file_path = :file_path, status = :status, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, req)
	if err != nil {
		return fmt.Errorf("update work request: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus writes only the status column.
func (r *WorkRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	const query = `UPDATE work_requests SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update work request status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive flips the soft-delete flag; the row is retained.
func (r *WorkRequestRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE work_requests SET is_archived = TRUE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive work request: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus aggregates active requests per status for a fiscal year.
func (r *WorkRequestRepository) CountByStatus(ctx context.Context, fiscalYear string) ([]dto.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM work_requests WHERE fiscal_year = $1 AND is_archived = FALSE GROUP BY status ORDER BY status`
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, fiscalYear); err != nil {
		return nil, fmt.Errorf("count requests by status: %w", err)
	}
	counts := make([]dto.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, dto.StatusCount{Status: row.Status, Count: row.Count})
	}
	return counts, nil
}

// CountByCategory aggregates active requests per category for a fiscal year.
func (r *WorkRequestRepository) CountByCategory(ctx context.Context, fiscalYear string) ([]dto.CategoryCount, error) {
	const query = `SELECT category_name, COUNT(*) AS count FROM work_requests WHERE fiscal_year = $1 AND is_archived = FALSE GROUP BY category_name ORDER BY category_name`
	rows := []struct {
		CategoryName string `db:"category_name"`
		Count        int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, fiscalYear); err != nil {
		return nil, fmt.Errorf("count requests by category: %w", err)
	}
	counts := make([]dto.CategoryCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, dto.CategoryCount{Category: row.CategoryName, Count: row.Count})
	}
	return counts, nil
}
