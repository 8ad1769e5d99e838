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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	query := `INSERT INTO accounts (id, username, password_hash, name, email, phone, remark, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.Name, a.Email, a.Phone, a.Remark, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT id, username, password_hash, name, email, phone, remark, created_at, updated_at
	          FROM accounts WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT id, username, password_hash, name, email, phone, remark, created_at, updated_at
	          FROM accounts WHERE username = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &a.Phone, &a.Remark, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) UpdateInfo(ctx context.Context, a *models.Account) error {
	a.UpdatedAt = time.Now().UTC()
	query := `UPDATE accounts SET name = ?, email = ?, phone = ?, remark = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Email, a.Phone, a.Remark, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRowAffected(res)
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
