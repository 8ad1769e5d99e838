// Package records persists secret records. Listing never returns ciphertext
// columns; only Get does, for the decrypting detail path.
package records

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	CategoryID   string
	PlatformName string // substring match
}

type Repository interface {
	Create(ctx context.Context, rec *models.Record) error
	Get(ctx context.Context, accountID, id string) (*models.Record, error)
	List(ctx context.Context, accountID string, f Filter) ([]models.Record, error)
	Update(ctx context.Context, rec *models.Record) error
	Delete(ctx context.Context, accountID, id string) error
	CountByAccount(ctx context.Context, accountID string) (int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
