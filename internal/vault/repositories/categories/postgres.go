package categories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgSelect = `SELECT id, code, name, description, sort_order, created_at, updated_at FROM categories`

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	query := `INSERT INTO categories (id, code, name, description, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Code, c.Name, c.Description, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, pgSelect+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, pgSelect+` WHERE code = $1`, code))
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return scanOne(r.db.QueryRowContext(ctx, pgSelect+` WHERE name = $1`, name))
}

func (r *PostgresRepository) List(ctx context.Context, descending bool) ([]models.Category, error) {
	query := pgSelect + ` ORDER BY sort_order`
	if descending {
		query += ` DESC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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

func (r *PostgresRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE categories SET code = $1, name = $2, description = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Code, c.Name, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) UpdateSortOrder(ctx context.Context, id string, order int) error {
	query := `UPDATE categories SET sort_order = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, order, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories`).Scan(&max); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(max.Int64), nil
}
