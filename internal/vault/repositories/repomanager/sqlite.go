package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	sqlitemigrations "github.com/dmitrijs2005/passvault/internal/vault/migrations/sqlite"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/envelopes"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/history"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/oplogs"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/records"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Envelopes(db dbx.DBTX) envelopes.Repository {
	return envelopes.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) OperationLogs(db dbx.DBTX) oplogs.Repository {
	return oplogs.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded SQLite migrations via goose.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(sqlitemigrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
