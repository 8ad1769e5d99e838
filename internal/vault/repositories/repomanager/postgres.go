package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	pgmigrations "github.com/dmitrijs2005/passvault/internal/vault/migrations/postgres"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/envelopes"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/history"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/oplogs"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/records"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Envelopes(db dbx.DBTX) envelopes.Repository {
	return envelopes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) OperationLogs(db dbx.DBTX) oplogs.Repository {
	return oplogs.NewPostgresRepository(db)
}

// RunMigrations applies the embedded PostgreSQL migrations via goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(pgmigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
