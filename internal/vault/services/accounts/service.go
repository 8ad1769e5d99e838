// Package accounts implements vault owner registration, login and profile
// management. Login passwords are bcrypt-hashed and unrelated to the root
// secret that protects record ciphertexts.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/envelope"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

// Info is the account profile together with vault summary data.
type Info struct {
	Account       *models.Account
	RootSecretSet bool
	RootHint      string
	RecordCount   int
}

type Service struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	envelopes *envelope.Service
	logger    logging.Logger
	hashCost  int
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, envelopes *envelope.Service, logger logging.Logger, hashCost int) *Service {
	return &Service{
		db:        db,
		repos:     repos,
		envelopes: envelopes,
		logger:    logger.With("component", "accounts"),
		hashCost:  hashCost,
	}
}

// Register creates a new account. Usernames are unique; a duplicate yields
// common.ErrValidation.
func (s *Service) Register(ctx context.Context, username, password, name string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", common.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", common.ErrValidation)
	}

	repo := s.repos.Accounts(s.db)
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", common.ErrValidation)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := cryptox.HashSecret([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
	}
	if err := repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "account_id", a.ID)
	return a, nil
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords both return common.ErrWrongSecret, so a caller cannot probe
// which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	a, err := s.repos.Accounts(s.db).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrWrongSecret
		}
		return nil, err
	}
	if !cryptox.VerifySecret([]byte(password), a.PasswordHash) {
		return nil, common.ErrWrongSecret
	}
	return a, nil
}

// GetInfo returns the profile plus the root secret status and record count.
func (s *Service) GetInfo(ctx context.Context, accountID string) (*Info, error) {
	a, err := s.repos.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	set, hint, err := s.envelopes.Status(ctx, accountID)
	if err != nil {
		return nil, err
	}
	count, err := s.repos.Records(s.db).CountByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Info{Account: a, RootSecretSet: set, RootHint: hint, RecordCount: count}, nil
}

// UpdateInfo rewrites the mutable profile fields.
func (s *Service) UpdateInfo(ctx context.Context, accountID, name, email, phone, remark string) error {
	repo := s.repos.Accounts(s.db)
	a, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	a.Name, a.Email, a.Phone, a.Remark = name, email, phone, remark
	return repo.UpdateInfo(ctx, a)
}

// ChangePassword replaces the login password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required: %w", common.ErrValidation)
	}
	repo := s.repos.Accounts(s.db)
	a, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !cryptox.VerifySecret([]byte(oldPassword), a.PasswordHash) {
		return common.ErrWrongSecret
	}
	hash, err := cryptox.HashSecret([]byte(newPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := repo.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return err
	}
	s.logger.Info(ctx, "password changed", "account_id", accountID)
	return nil
}

// Delete removes the account after verifying its password. The envelope,
// records and history rows go with it via the schema cascade; there is no
// undo short of restoring a backup.
func (s *Service) Delete(ctx context.Context, accountID, password string) error {
	repo := s.repos.Accounts(s.db)
	a, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !cryptox.VerifySecret([]byte(password), a.PasswordHash) {
		return common.ErrWrongSecret
	}
	if err := repo.Delete(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info(ctx, "account deleted", "account_id", accountID)
	return nil
}
