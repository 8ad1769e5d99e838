package records_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/records"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

func setupDB(t *testing.T) (*sql.DB, string, string) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repos := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, repos.RunMigrations(context.Background(), db))

	accountID := uuid.NewString()
	require.NoError(t, repos.Accounts(db).Create(context.Background(), &models.Account{
		ID: accountID, Username: "owner", PasswordHash: "x",
	}))

	categoryID := uuid.NewString()
	require.NoError(t, repos.Categories(db).Create(context.Background(), &models.Category{
		ID: categoryID, Code: "web", Name: "Websites", SortOrder: 1,
	}))

	return db, accountID, categoryID
}

func newRecord(accountID, categoryID, platform string) *models.Record {
	return &models.Record{
		ID:               uuid.NewString(),
		AccountID:        accountID,
		CategoryID:       categoryID,
		PlatformName:     platform,
		PlatformAccount:  "owner@" + platform,
		SecretCiphertext: "b64ciphertext",
		ExtraCiphertext:  "",
		Remark:           "r",
	}
}

func TestCreateAndGet(t *testing.T) {
	db, accountID, categoryID := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	rec := newRecord(accountID, categoryID, "example.com")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, accountID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.PlatformName, got.PlatformName)
	assert.Equal(t, "b64ciphertext", got.SecretCiphertext)
	assert.Equal(t, "Websites", got.CategoryName)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGet_WrongAccount(t *testing.T) {
	db, accountID, categoryID := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	rec := newRecord(accountID, categoryID, "example.com")
	require.NoError(t, repo.Create(ctx, rec))

	_, err := repo.Get(ctx, uuid.NewString(), rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList_FilterAndNoCiphertext(t *testing.T) {
	db, accountID, categoryID := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecord(accountID, categoryID, "example.com")))
	require.NoError(t, repo.Create(ctx, newRecord(accountID, categoryID, "bank.example")))

	all, err := repo.List(ctx, accountID, records.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].SecretCiphertext)

	filtered, err := repo.List(ctx, accountID, records.Filter{PlatformName: "bank"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "bank.example", filtered[0].PlatformName)
}

func TestUpdateAndDelete(t *testing.T) {
	db, accountID, categoryID := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	rec := newRecord(accountID, categoryID, "example.com")
	require.NoError(t, repo.Create(ctx, rec))

	rec.PlatformAccount = "renamed"
	rec.SecretCiphertext = "newciphertext"
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.Get(ctx, accountID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.PlatformAccount)
	assert.Equal(t, "newciphertext", got.SecretCiphertext)

	require.NoError(t, repo.Delete(ctx, accountID, rec.ID))
	_, err = repo.Get(ctx, accountID, rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, accountID, rec.ID), common.ErrNotFound)
}

func TestCounts(t *testing.T) {
	db, accountID, categoryID := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	n, err := repo.CountByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.Create(ctx, newRecord(accountID, categoryID, "example.com")))

	n, err = repo.CountByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountByCategory(ctx, categoryID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
