package envelopes

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

func (r *SQLiteRepository) Get(ctx context.Context, accountID string) (*models.RootEnvelope, error) {
	query := `SELECT account_id, verification_hash, hint, kdf_salt, public_key, wrapped_private_key, created_at, updated_at
	          FROM root_envelopes WHERE account_id = ?`
	e := &models.RootEnvelope{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&e.AccountID, &e.VerificationHash, &e.Hint, &e.KDFSalt, &e.PublicKey, &e.WrappedPrivateKey, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select envelope: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, e *models.RootEnvelope) error {
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	query := `INSERT INTO root_envelopes (account_id, verification_hash, hint, kdf_salt, public_key, wrapped_private_key, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.AccountID, e.VerificationHash, e.Hint, e.KDFSalt, e.PublicKey, e.WrappedPrivateKey, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert envelope: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.RootEnvelope) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE root_envelopes
	          SET verification_hash = ?, hint = ?, kdf_salt = ?, wrapped_private_key = ?, updated_at = ?
	          WHERE account_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.VerificationHash, e.Hint, e.KDFSalt, e.WrappedPrivateKey, e.UpdatedAt, e.AccountID)
	if err != nil {
		return fmt.Errorf("failed to update envelope: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
