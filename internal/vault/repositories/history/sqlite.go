package history

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

func (r *SQLiteRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	if e.OperatedAt.IsZero() {
		e.OperatedAt = time.Now().UTC()
	}
	query := `INSERT INTO record_history (id, record_id, account_id, category_id, platform_name, platform_account,
	            secret_ciphertext, extra_ciphertext, related_email, related_phone, remark, operation, operated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.RecordID, e.AccountID, e.CategoryID, e.PlatformName, e.PlatformAccount,
		e.SecretCiphertext, e.ExtraCiphertext, e.RelatedEmail, e.RelatedPhone, e.Remark,
		e.Operation, e.OperatedAt)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByRecord(ctx context.Context, accountID, recordID string) ([]models.HistoryEntry, error) {
	query := `SELECT h.id, h.record_id, h.account_id, h.category_id, COALESCE(c.name, ''),
	                 h.platform_name, h.platform_account, h.related_email, h.related_phone, h.remark,
	                 h.operation, h.operated_at
	          FROM record_history h LEFT JOIN categories c ON h.category_id = c.id
	          WHERE h.record_id = ? AND h.account_id = ?
	          ORDER BY h.operated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, recordID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	var result []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.RecordID, &e.AccountID, &e.CategoryID, &e.CategoryName,
			&e.PlatformName, &e.PlatformAccount, &e.RelatedEmail, &e.RelatedPhone, &e.Remark,
			&e.Operation, &e.OperatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, accountID, id string) (*models.HistoryEntry, error) {
	query := `SELECT h.id, h.record_id, h.account_id, h.category_id, COALESCE(c.name, ''),
	                 h.platform_name, h.platform_account, h.secret_ciphertext, h.extra_ciphertext,
	                 h.related_email, h.related_phone, h.remark, h.operation, h.operated_at
	          FROM record_history h LEFT JOIN categories c ON h.category_id = c.id
	          WHERE h.id = ? AND h.account_id = ?`
	e := &models.HistoryEntry{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&e.ID, &e.RecordID, &e.AccountID, &e.CategoryID, &e.CategoryName,
		&e.PlatformName, &e.PlatformAccount, &e.SecretCiphertext, &e.ExtraCiphertext,
		&e.RelatedEmail, &e.RelatedPhone, &e.Remark, &e.Operation, &e.OperatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select history entry: %w", err)
	}
	return e, nil
}
