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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) error {
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	query := `INSERT INTO records (id, account_id, category_id, platform_name, platform_account,
	            secret_ciphertext, extra_ciphertext, related_email, related_phone, remark, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.AccountID, rec.CategoryID, rec.PlatformName, rec.PlatformAccount,
		rec.SecretCiphertext, rec.ExtraCiphertext, rec.RelatedEmail, rec.RelatedPhone, rec.Remark,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, accountID, id string) (*models.Record, error) {
	query := `SELECT r.id, r.account_id, r.category_id, c.name, r.platform_name, r.platform_account,
	                 r.secret_ciphertext, r.extra_ciphertext, r.related_email, r.related_phone, r.remark,
	                 r.created_at, r.updated_at
	          FROM records r JOIN categories c ON r.category_id = c.id
	          WHERE r.id = $1 AND r.account_id = $2`
	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&rec.ID, &rec.AccountID, &rec.CategoryID, &rec.CategoryName, &rec.PlatformName, &rec.PlatformAccount,
		&rec.SecretCiphertext, &rec.ExtraCiphertext, &rec.RelatedEmail, &rec.RelatedPhone, &rec.Remark,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) List(ctx context.Context, accountID string, f Filter) ([]models.Record, error) {
	query := `SELECT r.id, r.account_id, r.category_id, c.name, r.platform_name, r.platform_account,
	                 r.related_email, r.related_phone, r.remark, r.created_at, r.updated_at
	          FROM records r JOIN categories c ON r.category_id = c.id
	          WHERE r.account_id = $1`
	args := []any{accountID}

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(` AND r.category_id = $%d`, len(args))
	}
	if f.PlatformName != "" {
		args = append(args, "%"+f.PlatformName+"%")
		query += fmt.Sprintf(` AND r.platform_name LIKE $%d`, len(args))
	}
	query += ` ORDER BY r.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) error {
	rec.UpdatedAt = time.Now().UTC()
	query := `UPDATE records SET category_id = $1, platform_name = $2, platform_account = $3,
	            secret_ciphertext = $4, extra_ciphertext = $5, related_email = $6, related_phone = $7,
	            remark = $8, updated_at = $9
	          WHERE id = $10 AND account_id = $11`
	res, err := r.db.ExecContext(ctx, query,
		rec.CategoryID, rec.PlatformName, rec.PlatformAccount,
		rec.SecretCiphertext, rec.ExtraCiphertext, rec.RelatedEmail, rec.RelatedPhone,
		rec.Remark, rec.UpdatedAt, rec.ID, rec.AccountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return pgRequireRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return pgRequireRowAffected(res)
}

func (r *PostgresRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE account_id = $1`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func pgRequireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
