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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, accountID string) (*models.RootEnvelope, error) {
	query := `SELECT account_id, verification_hash, hint, kdf_salt, public_key, wrapped_private_key, created_at, updated_at
	          FROM root_envelopes WHERE account_id = $1`
	e := &models.RootEnvelope{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&e.AccountID, &e.VerificationHash, &e.Hint, &e.KDFSalt, &e.PublicKey, &e.WrappedPrivateKey, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.RootEnvelope) error {
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	query := `INSERT INTO root_envelopes (account_id, verification_hash, hint, kdf_salt, public_key, wrapped_private_key, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		e.AccountID, e.VerificationHash, e.Hint, e.KDFSalt, e.PublicKey, e.WrappedPrivateKey, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.RootEnvelope) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE root_envelopes
	          SET verification_hash = $1, hint = $2, kdf_salt = $3, wrapped_private_key = $4, updated_at = $5
	          WHERE account_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		e.VerificationHash, e.Hint, e.KDFSalt, e.WrappedPrivateKey, e.UpdatedAt, e.AccountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
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
