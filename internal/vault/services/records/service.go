// Package records implements the secret-record lifecycle. Sensitive fields
// are encrypted before they reach storage and every mutation appends a
// ciphertext snapshot to the history trail in the same transaction.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/envelope"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	recrepo "github.com/dmitrijs2005/passvault/internal/vault/repositories/records"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	CategoryID   string
	PlatformName string // substring match
}

// Input carries the plaintext attributes of a record on create and update.
// Secret is the credential itself; Extra is an optional confidential note.
// Both are encrypted before storage; the rest is plaintext metadata.
type Input struct {
	CategoryID      string
	PlatformName    string
	PlatformAccount string
	Secret          string
	Extra           string
	RelatedEmail    string
	RelatedPhone    string
	Remark          string
}

// Detail is a record with its sensitive fields decrypted.
type Detail struct {
	Record *models.Record
	Secret string
	Extra  string
}

// HistoryDetail is a history entry with its sensitive fields decrypted.
type HistoryDetail struct {
	Entry  *models.HistoryEntry
	Secret string
	Extra  string
}

type Service struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	envelopes *envelope.Service
	logger    logging.Logger
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, envelopes *envelope.Service, logger logging.Logger) *Service {
	return &Service{
		db:        db,
		repos:     repos,
		envelopes: envelopes,
		logger:    logger.With("component", "records"),
	}
}

func (s *Service) validate(in *Input) error {
	if strings.TrimSpace(in.PlatformName) == "" {
		return fmt.Errorf("platform name is required: %w", common.ErrValidation)
	}
	if strings.TrimSpace(in.PlatformAccount) == "" {
		return fmt.Errorf("platform account is required: %w", common.ErrValidation)
	}
	if in.Secret == "" {
		return fmt.Errorf("secret is required: %w", common.ErrValidation)
	}
	if in.CategoryID == "" {
		return fmt.Errorf("category is required: %w", common.ErrValidation)
	}
	return nil
}

// encryptInput encrypts the sensitive fields under the account public key.
// An empty Extra stays empty rather than becoming a ciphertext of "".
func (s *Service) encryptInput(ctx context.Context, accountID string, in *Input) (secretCT, extraCT string, err error) {
	secretCT, err = s.envelopes.EncryptField(ctx, accountID, []byte(in.Secret))
	if err != nil {
		return "", "", err
	}
	if in.Extra != "" {
		extraCT, err = s.envelopes.EncryptField(ctx, accountID, []byte(in.Extra))
		if err != nil {
			return "", "", err
		}
	}
	return secretCT, extraCT, nil
}

// Create stores a new record and its "create" history entry atomically.
// The category must exist.
func (s *Service) Create(ctx context.Context, accountID string, in *Input) (*models.Record, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if _, err := s.repos.Categories(s.db).GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("unknown category: %w", common.ErrValidation)
		}
		return nil, err
	}

	secretCT, extraCT, err := s.encryptInput(ctx, accountID, in)
	if err != nil {
		return nil, err
	}

	rec := &models.Record{
		ID:               uuid.NewString(),
		AccountID:        accountID,
		CategoryID:       in.CategoryID,
		PlatformName:     in.PlatformName,
		PlatformAccount:  in.PlatformAccount,
		SecretCiphertext: secretCT,
		ExtraCiphertext:  extraCT,
		RelatedEmail:     in.RelatedEmail,
		RelatedPhone:     in.RelatedPhone,
		Remark:           in.Remark,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Records(tx).Create(ctx, rec); err != nil {
			return err
		}
		return s.repos.History(tx).Append(ctx, snapshot(rec, models.OpCreate))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "record created", "record_id", rec.ID)
	return rec, nil
}

// Update rewrites a record after verifying the root secret. New sensitive
// values are encrypted under the current public key; the updated ciphertext
// and an "update" history entry commit together.
func (s *Service) Update(ctx context.Context, accountID, recordID string, rootSecret []byte, in *Input) error {
	if err := s.validate(in); err != nil {
		return err
	}
	if err := s.envelopes.VerifyRootSecret(ctx, accountID, rootSecret); err != nil {
		return err
	}

	rec, err := s.repos.Records(s.db).Get(ctx, accountID, recordID)
	if err != nil {
		return err
	}
	if _, err := s.repos.Categories(s.db).GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("unknown category: %w", common.ErrValidation)
		}
		return err
	}

	secretCT, extraCT, err := s.encryptInput(ctx, accountID, in)
	if err != nil {
		return err
	}

	rec.CategoryID = in.CategoryID
	rec.PlatformName = in.PlatformName
	rec.PlatformAccount = in.PlatformAccount
	rec.SecretCiphertext = secretCT
	rec.ExtraCiphertext = extraCT
	rec.RelatedEmail = in.RelatedEmail
	rec.RelatedPhone = in.RelatedPhone
	rec.Remark = in.Remark

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Records(tx).Update(ctx, rec); err != nil {
			return err
		}
		return s.repos.History(tx).Append(ctx, snapshot(rec, models.OpUpdate))
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "record updated", "record_id", rec.ID)
	return nil
}

// Delete removes a record after verifying the root secret. The last
// ciphertext goes into a "delete" history entry, which outlives the record.
func (s *Service) Delete(ctx context.Context, accountID, recordID string, rootSecret []byte) error {
	if err := s.envelopes.VerifyRootSecret(ctx, accountID, rootSecret); err != nil {
		return err
	}
	rec, err := s.repos.Records(s.db).Get(ctx, accountID, recordID)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.History(tx).Append(ctx, snapshot(rec, models.OpDelete)); err != nil {
			return err
		}
		return s.repos.Records(tx).Delete(ctx, accountID, recordID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "record deleted", "record_id", recordID)
	return nil
}

// List returns record metadata without ciphertext and without decrypting
// anything, so browsing never needs the root secret.
func (s *Service) List(ctx context.Context, accountID string, f Filter) ([]models.Record, error) {
	return s.repos.Records(s.db).List(ctx, accountID, recrepo.Filter{
		CategoryID:   f.CategoryID,
		PlatformName: f.PlatformName,
	})
}

// Detail returns a record with its sensitive fields decrypted.
func (s *Service) Detail(ctx context.Context, accountID, recordID string, rootSecret []byte) (*Detail, error) {
	rec, err := s.repos.Records(s.db).Get(ctx, accountID, recordID)
	if err != nil {
		return nil, err
	}
	secret, extra, err := s.decryptPair(ctx, accountID, rootSecret, rec.SecretCiphertext, rec.ExtraCiphertext)
	if err != nil {
		return nil, err
	}
	return &Detail{Record: rec, Secret: secret, Extra: extra}, nil
}

// History lists a record's audit trail, newest first, ciphertext omitted.
// The record id may belong to an already deleted record.
func (s *Service) History(ctx context.Context, accountID, recordID string) ([]models.HistoryEntry, error) {
	return s.repos.History(s.db).ListByRecord(ctx, accountID, recordID)
}

// HistoryDetail returns one history entry with its sensitive fields
// decrypted. Snapshots taken before a rotation still decrypt, because
// rotation never touches record ciphertext.
func (s *Service) HistoryDetail(ctx context.Context, accountID, entryID string, rootSecret []byte) (*HistoryDetail, error) {
	e, err := s.repos.History(s.db).Get(ctx, accountID, entryID)
	if err != nil {
		return nil, err
	}
	secret, extra, err := s.decryptPair(ctx, accountID, rootSecret, e.SecretCiphertext, e.ExtraCiphertext)
	if err != nil {
		return nil, err
	}
	return &HistoryDetail{Entry: e, Secret: secret, Extra: extra}, nil
}

func (s *Service) decryptPair(ctx context.Context, accountID string, rootSecret []byte, secretCT, extraCT string) (secret, extra string, err error) {
	pt, err := s.envelopes.DecryptField(ctx, accountID, rootSecret, secretCT)
	if err != nil {
		return "", "", err
	}
	secret = string(pt)
	if extraCT != "" {
		pt, err = s.envelopes.DecryptField(ctx, accountID, rootSecret, extraCT)
		if err != nil {
			return "", "", err
		}
		extra = string(pt)
	}
	return secret, extra, nil
}

func snapshot(rec *models.Record, op string) *models.HistoryEntry {
	return &models.HistoryEntry{
		ID:               uuid.NewString(),
		RecordID:         rec.ID,
		AccountID:        rec.AccountID,
		CategoryID:       rec.CategoryID,
		PlatformName:     rec.PlatformName,
		PlatformAccount:  rec.PlatformAccount,
		SecretCiphertext: rec.SecretCiphertext,
		ExtraCiphertext:  rec.ExtraCiphertext,
		RelatedEmail:     rec.RelatedEmail,
		RelatedPhone:     rec.RelatedPhone,
		Remark:           rec.Remark,
		Operation:        op,
		OperatedAt:       time.Now().UTC(),
	}
}
