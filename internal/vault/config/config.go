// Package config handles vault configuration: defaults, an optional JSON
// overlay, and command-line flags, applied in that order.
package config

import (
	"time"

	"github.com/dmitrijs2005/passvault/internal/cryptox"
)

// Config holds runtime settings for the vault.
//
// Fields:
//   - DatabaseDSN: SQLite file path, or a postgres:// DSN (pgx).
//   - BackupDir: directory where database backups are written.
//   - BcryptCost: work factor for login and root-secret hashing.
//   - S3UploadTimeout: per-attempt deadline for backup uploads.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. An
//     empty S3BaseEndpoint disables backup uploads entirely.
type Config struct {
	DatabaseDSN     string
	BackupDir       string
	BcryptCost      int
	S3UploadTimeout time.Duration
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
}

// LoadDefaults populates Config with local single-user defaults: a SQLite
// file next to the binary and no object storage.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "vault.db"
	c.BackupDir = "backups"
	c.BcryptCost = cryptox.DefaultHashCost
	c.S3UploadTimeout = 30 * time.Second
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = "vault-backups"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
