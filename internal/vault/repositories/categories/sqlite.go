package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteSelect = `SELECT id, code, name, description, sort_order, created_at, updated_at FROM categories`

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	query := `INSERT INTO categories (id, code, name, description, sort_order, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Code, c.Name, c.Description, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, sqliteSelect+` WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetByCode(ctx context.Context, code string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, sqliteSelect+` WHERE code = ?`, code))
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, sqliteSelect+` WHERE name = ?`, name))
}

func scanOne(row *sql.Row) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) List(ctx context.Context, descending bool) ([]models.Category, error) {
	query := sqliteSelect + ` ORDER BY sort_order`
	if descending {
		query += ` DESC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE categories SET code = ?, name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, c.Code, c.Name, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) UpdateSortOrder(ctx context.Context, id string, order int) error {
	query := `UPDATE categories SET sort_order = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, order, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update sort order: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories`).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to select max sort order: %w", err)
	}
	return int(max.Int64), nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
