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

// LookupRepository serves the reference-data tables (categories, offices,
// locations, divisions, user types). The tables share one shape, so a
// single repository parameterised by kind covers them all. The kind is
// whitelisted before it is interpolated into SQL.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository creates a new instance of LookupRepository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

const lookupColumns = `id, name, is_archived, created_at, updated_at`

func (r *LookupRepository) table(kind models.LookupKind) (string, error) {
	if !models.ValidLookupKind(kind) {
		return "", fmt.Errorf("unknown lookup kind %q", kind)
	}
	return string(kind), nil
}

// List returns lookup rows with total count.
func (r *LookupRepository) List(ctx context.Context, kind models.LookupKind, filter models.LookupFilter) ([]models.LookupItem, int, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, 0, err
	}

	baseQuery := fmt.Sprintf(`FROM %s WHERE 1=1`, table)
	var conditions []string
	var args []interface{}

	if !filter.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
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
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", lookupColumns, baseQuery, pageSize, offset)

	var items []models.LookupItem
	if err := r.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	return items, total, nil
}

// FindByID returns a lookup row by identifier.
func (r *LookupRepository) FindByID(ctx context.Context, kind models.LookupKind, id string) (*models.LookupItem, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 LIMIT 1`, lookupColumns, table)
	var item models.LookupItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", table, err)
	}
	return &item, nil
}

// ExistsActiveName reports whether an unarchived row carries the name.
// Work-request validation resolves enumerated fields through this check.
func (r *LookupRepository) ExistsActiveName(ctx context.Context, kind models.LookupKind, name string) (bool, error) {
	table, err := r.table(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE LOWER(name) = LOWER($1) AND is_archived = FALSE`, table)
	var count int
	if err := r.db.GetContext(ctx, &count, query, name); err != nil {
		return false, fmt.Errorf("check %s name: %w", table, err)
	}
	return count > 0, nil
}

// Create inserts a new lookup row.
func (r *LookupRepository) Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (id, name, is_archived, created_at, updated_at) VALUES (:id, :name, :is_archived, :created_at, :updated_at)`, table)
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// Update renames a lookup row.
func (r *LookupRepository) Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	item.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`UPDATE %s SET name = :name, updated_at = :updated_at WHERE id = :id`, table)
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive flips the soft-delete flag; the row is retained.
func (r *LookupRepository) Archive(ctx context.Context, kind models.LookupKind, id string) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET is_archived = TRUE, updated_at = $2 WHERE id = $1`, table)
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive %s: %w", table, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
