// Package accounts persists vault owner identities.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// Repository is the storage contract for accounts. Implementations return
// common.ErrNotFound when a lookup matches nothing.
type Repository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateInfo(ctx context.Context, a *models.Account) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
