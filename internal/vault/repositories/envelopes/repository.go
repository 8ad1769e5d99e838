// Package envelopes persists the per-account Root Key Envelope. There is at
// most one envelope per account; the repository never sees plaintext keys.
package envelopes

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type Repository interface {
	Get(ctx context.Context, accountID string) (*models.RootEnvelope, error)
	Create(ctx context.Context, e *models.RootEnvelope) error
	// Update rewrites the rotating fields: verification hash, hint, KDF salt
	// and wrapped private key. The public key never changes after creation.
	Update(ctx context.Context, e *models.RootEnvelope) error
}
