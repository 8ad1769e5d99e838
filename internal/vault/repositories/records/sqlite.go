package records

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

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.Record) error {
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	query := `INSERT INTO records (id, account_id, category_id, platform_name, platform_account,
	            secret_ciphertext, extra_ciphertext, related_email, related_phone, remark, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.AccountID, rec.CategoryID, rec.PlatformName, rec.PlatformAccount,
		rec.SecretCiphertext, rec.ExtraCiphertext, rec.RelatedEmail, rec.RelatedPhone, rec.Remark,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, accountID, id string) (*models.Record, error) {
	query := `SELECT r.id, r.account_id, r.category_id, c.name, r.platform_name, r.platform_account,
	                 r.secret_ciphertext, r.extra_ciphertext, r.related_email, r.related_phone, r.remark,
	                 r.created_at, r.updated_at
	          FROM records r JOIN categories c ON r.category_id = c.id
	          WHERE r.id = ? AND r.account_id = ?`
	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&rec.ID, &rec.AccountID, &rec.CategoryID, &rec.CategoryName, &rec.PlatformName, &rec.PlatformAccount,
		&rec.SecretCiphertext, &rec.ExtraCiphertext, &rec.RelatedEmail, &rec.RelatedPhone, &rec.Remark,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) List(ctx context.Context, accountID string, f Filter) ([]models.Record, error) {
	query := `SELECT r.id, r.account_id, r.category_id, c.name, r.platform_name, r.platform_account,
	                 r.related_email, r.related_phone, r.remark, r.created_at, r.updated_at
	          FROM records r JOIN categories c ON r.category_id = c.id
	          WHERE r.account_id = ?`
	args := []any{accountID}

	if f.CategoryID != "" {
		query += ` AND r.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.PlatformName != "" {
		query += ` AND r.platform_name LIKE ?`
		args = append(args, "%"+f.PlatformName+"%")
	}
	query += ` ORDER BY r.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.CategoryID, &rec.CategoryName,
			&rec.PlatformName, &rec.PlatformAccount, &rec.RelatedEmail, &rec.RelatedPhone, &rec.Remark,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.Record) error {
	rec.UpdatedAt = time.Now().UTC()
	query := `UPDATE records SET category_id = ?, platform_name = ?, platform_account = ?,
	            secret_ciphertext = ?, extra_ciphertext = ?, related_email = ?, related_phone = ?,
	            remark = ?, updated_at = ?
	          WHERE id = ? AND account_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.CategoryID, rec.PlatformName, rec.PlatformAccount,
		rec.SecretCiphertext, rec.ExtraCiphertext, rec.RelatedEmail, rec.RelatedPhone,
		rec.Remark, rec.UpdatedAt, rec.ID, rec.AccountID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, accountID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
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
