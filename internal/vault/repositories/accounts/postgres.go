package accounts

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	query := `INSERT INTO accounts (id, username, password_hash, name, email, phone, remark, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.Name, a.Email, a.Phone, a.Remark, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT id, username, password_hash, name, email, phone, remark, created_at, updated_at
	          FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT id, username, password_hash, name, email, phone, remark, created_at, updated_at
	          FROM accounts WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &a.Phone, &a.Remark, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) UpdateInfo(ctx context.Context, a *models.Account) error {
	a.UpdatedAt = time.Now().UTC()
	query := `UPDATE accounts SET name = $1, email = $2, phone = $3, remark = $4, updated_at = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Email, a.Phone, a.Remark, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}
