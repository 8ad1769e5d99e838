// Package repomanager wires repository constructors to a storage backend and
// exposes the schema migration hook. The manager is handed around explicitly;
// there is no module-level storage singleton.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/envelopes"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/history"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/oplogs"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/records"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	Envelopes(db dbx.DBTX) envelopes.Repository
	Categories(db dbx.DBTX) categories.Repository
	Records(db dbx.DBTX) records.Repository
	History(db dbx.DBTX) history.Repository
	OperationLogs(db dbx.DBTX) oplogs.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
