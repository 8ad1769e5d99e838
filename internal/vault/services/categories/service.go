// Package categories implements category management. Categories are shared
// vocabulary, not per-account data: codes and names are globally unique and
// a category cannot be deleted while any record references it.
package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

type Service struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *Service {
	return &Service{db: db, repos: repos, logger: logger.With("component", "categories")}
}

// Create adds a category at the end of the sort order. Code and name must
// be unique; a clash yields common.ErrValidation.
func (s *Service) Create(ctx context.Context, code, name, description string) (*models.Category, error) {
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("code and name are required: %w", common.ErrValidation)
	}

	repo := s.repos.Categories(s.db)
	if err := s.checkUnique(ctx, repo.GetByCode, code, ""); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, repo.GetByName, name, ""); err != nil {
		return nil, err
	}

	maxOrder, err := repo.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        name,
		Description: description,
		SortOrder:   maxOrder + 1,
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all categories by sort order.
func (s *Service) List(ctx context.Context, descending bool) ([]models.Category, error) {
	return s.repos.Categories(s.db).List(ctx, descending)
}

// Update rewrites code, name and description. Uniqueness checks skip the
// category itself, so saving without renaming is not a clash.
func (s *Service) Update(ctx context.Context, id, code, name, description string) error {
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)
	if code == "" || name == "" {
		return fmt.Errorf("code and name are required: %w", common.ErrValidation)
	}

	repo := s.repos.Categories(s.db)
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkUnique(ctx, repo.GetByCode, code, id); err != nil {
		return err
	}
	if err := s.checkUnique(ctx, repo.GetByName, name, id); err != nil {
		return err
	}

	c.Code, c.Name, c.Description = code, name, description
	return repo.Update(ctx, c)
}

// Delete removes a category. It fails with common.ErrValidation while any
// record still references it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repos.Categories(s.db).GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.repos.Records(s.db).CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category is used by %d records: %w", count, common.ErrValidation)
	}
	return s.repos.Categories(s.db).Delete(ctx, id)
}

// Reorder assigns sort order 1..n following the given id sequence, in one
// transaction so a partial reorder is never visible.
func (s *Service) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("no category ids given: %w", common.ErrValidation)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Categories(tx)
		for i, id := range ids {
			if err := repo.UpdateSortOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) checkUnique(ctx context.Context, lookup func(context.Context, string) (*models.Category, error), value, selfID string) error {
	existing, err := lookup(ctx, value)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("category %q already exists: %w", value, common.ErrValidation)
	}
	return nil
}
