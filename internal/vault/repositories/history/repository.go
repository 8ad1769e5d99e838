// Package history persists the append-only audit trail of record mutations.
// Entries are never updated or deleted here; removal happens only through
// the accounts cascade.
package history

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type Repository interface {
	Append(ctx context.Context, e *models.HistoryEntry) error
	// ListByRecord returns entries newest first, without ciphertext columns.
	ListByRecord(ctx context.Context, accountID, recordID string) ([]models.HistoryEntry, error)
	Get(ctx context.Context, accountID, id string) (*models.HistoryEntry, error)
}
