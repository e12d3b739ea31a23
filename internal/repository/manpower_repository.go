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

// ManpowerRepository provides database access for manpower records.
type ManpowerRepository struct {
	db *sqlx.DB
}

// NewManpowerRepository creates a new instance of ManpowerRepository.
func NewManpowerRepository(db *sqlx.DB) *ManpowerRepository {
	return &ManpowerRepository{db: db}
}

const manpowerColumns = `id, first_name, last_name, position, division_name, is_archived, created_at, updated_at`

// Create inserts a new manpower record.
func (r *ManpowerRepository) Create(ctx context.Context, mp *models.Manpower) error {
	if mp.ID == "" {
		mp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mp.CreatedAt.IsZero() {
		mp.CreatedAt = now
	}
	mp.UpdatedAt = now

	const query = `INSERT INTO manpower (id, first_name, last_name, position, division_name, is_archived, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :position, :division_name, :is_archived, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mp); err != nil {
		return fmt.Errorf("create manpower: %w", err)
	}
	return nil
}

// FindByID returns a manpower record by identifier.
func (r *ManpowerRepository) FindByID(ctx context.Context, id string) (*models.Manpower, error) {
	query := fmt.Sprintf(`SELECT %s FROM manpower WHERE id = $1 LIMIT 1`, manpowerColumns)
	var mp models.Manpower
	if err := r.db.GetContext(ctx, &mp, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find manpower by id: %w", err)
	}
	return &mp, nil
}

// List returns manpower records based on filter with total count.
func (r *ManpowerRepository) List(ctx context.Context, filter models.ManpowerFilter) ([]models.Manpower, int, error) {
	baseQuery := `FROM manpower WHERE 1=1`
	var conditions []string
	var args []interface{}

	if !filter.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}
	if filter.DivisionName != "" {
		conditions = append(conditions, fmt.Sprintf("division_name = $%d", len(args)+1))
		args = append(args, filter.DivisionName)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(position) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY last_name ASC LIMIT %d OFFSET %d", manpowerColumns, baseQuery, pageSize, offset)

	var records []models.Manpower
	if err := r.db.SelectContext(ctx, &records, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list manpower: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count manpower: %w", err)
	}

	return records, total, nil
}

// Update overwrites the manpower fields.
func (r *ManpowerRepository) Update(ctx context.Context, mp *models.Manpower) error {
	mp.UpdatedAt = time.Now().UTC()

	const query = `UPDATE manpower SET first_name = :first_name, last_name = :last_name, position = :position, division_name = :division_name, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, mp)
	if err != nil {
		return fmt.Errorf("update manpower: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive flips the soft-delete flag.
func (r *ManpowerRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE manpower SET is_archived = TRUE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive manpower: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
