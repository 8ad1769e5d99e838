// Package maintenance implements database backup and restore plus the
// operation log. Backups copy the SQLite database file; when an S3-compatible
// endpoint is configured the copy is also uploaded with bounded retry.
package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/config"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

// Operation tags persisted in the log.
const (
	OpBackup  = "backup"
	OpRestore = "restore"
)

type Service struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	cfg      *config.Config
	logger   logging.Logger
	uploader Uploader
}

// NewService builds a maintenance service. uploader may be nil; it is only
// consulted when cfg.S3BaseEndpoint is set.
func NewService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, uploader Uploader) *Service {
	return &Service{
		db:       db,
		repos:    repos,
		cfg:      cfg,
		logger:   logger.With("component", "maintenance"),
		uploader: uploader,
	}
}

// databaseFile returns the SQLite file path behind the DSN, or
// common.ErrValidation when the vault runs on PostgreSQL: server databases
// have their own backup tooling and file copies would be meaningless.
func (s *Service) databaseFile() (string, error) {
	dsn := s.cfg.DatabaseDSN
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "", fmt.Errorf("file backup is only available for SQLite databases: %w", common.ErrValidation)
	}
	dsn = strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	return dsn, nil
}

// Backup copies the database file into the backup directory under a
// timestamped name, logs the operation, and uploads the copy when object
// storage is configured. The backup file name is returned.
func (s *Service) Backup(ctx context.Context, operator string) (string, error) {
	src, err := s.databaseFile()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.BackupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w: %w", common.ErrStorage, err)
	}

	base := filepath.Base(src)
	name := fmt.Sprintf("%s.%s.bak", base, time.Now().UTC().Format("20060102T150405"))
	dst := filepath.Join(s.cfg.BackupDir, name)

	if err := copyFile(src, dst); err != nil {
		return "", err
	}

	if err := s.appendLog(ctx, OpBackup, name, operator); err != nil {
		return "", err
	}

	if s.cfg.S3BaseEndpoint != "" && s.uploader != nil {
		if err := s.uploader.Upload(ctx, dst, name); err != nil {
			// local copy exists and is logged, so report but do not fail
			s.logger.Error(ctx, "backup upload failed", "file", name, "error", err)
		} else {
			s.logger.Info(ctx, "backup uploaded", "file", name, "bucket", s.cfg.S3Bucket)
		}
	}

	s.logger.Info(ctx, "backup written", "file", name)
	return name, nil
}

// Restore copies a named backup from the backup directory back over the
// active database file and logs the operation. Callers must reopen the
// database afterwards; the running process keeps its old connections.
func (s *Service) Restore(ctx context.Context, fileName, operator string) error {
	dst, err := s.databaseFile()
	if err != nil {
		return err
	}
	if fileName == "" || fileName != filepath.Base(fileName) {
		return fmt.Errorf("invalid backup file name: %w", common.ErrValidation)
	}

	src := filepath.Join(s.cfg.BackupDir, fileName)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup %q: %w", fileName, common.ErrNotFound)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := s.appendLog(ctx, OpRestore, fileName, operator); err != nil {
		return err
	}

	s.logger.Info(ctx, "backup restored", "file", fileName)
	return nil
}

// ListBackups returns the backup file names in the backup directory,
// newest first by name (the timestamp format sorts lexicographically).
func (s *Service) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup dir: %w: %w", common.ErrStorage, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".bak") {
			names = append(names, e.Name())
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}

// Logs lists all maintenance operations, newest first.
func (s *Service) Logs(ctx context.Context) ([]models.OperationLog, error) {
	return s.repos.OperationLogs(s.db).List(ctx)
}

func (s *Service) appendLog(ctx context.Context, op, fileName, operator string) error {
	return s.repos.OperationLogs(s.db).Append(ctx, &models.OperationLog{
		ID:        uuid.NewString(),
		Operation: op,
		FileName:  fileName,
		Operator:  operator,
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w: %w", src, common.ErrStorage, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w: %w", dst, common.ErrStorage, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w: %w", src, common.ErrStorage, err)
	}
	return out.Close()
}
