// Package categories persists record categories (code/name/sort order).
package categories

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetByCode(ctx context.Context, code string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	// List returns categories ordered by sort_order, ascending or descending.
	List(ctx context.Context, descending bool) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
	UpdateSortOrder(ctx context.Context, id string, order int) error
	MaxSortOrder(ctx context.Context) (int, error)
}
