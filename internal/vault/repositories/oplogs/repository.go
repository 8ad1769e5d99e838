// Package oplogs persists maintenance operation logs (backup/restore).
package oplogs

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type Repository interface {
	Append(ctx context.Context, l *models.OperationLog) error
	// List returns all logs, newest first.
	List(ctx context.Context) ([]models.OperationLog, error)
}
