package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. It uses timex.Duration for
// interval fields, which accepts both string values such as "30s" and
// integer nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	BackupDir       string         `json:"backup_dir"`
	BcryptCost      int            `json:"bcrypt_cost"`
	S3UploadTimeout timex.Duration `json:"s3_upload_timeout"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flag into config. When no flag is given, nothing is loaded.
// An unreadable or malformed file panics; a half-applied config is worse
// than no start at all.
//
// Zero-valued JSON fields are skipped so a partial file only overrides
// what it names.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.BackupDir != "" {
		config.BackupDir = c.BackupDir
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.S3UploadTimeout.Duration != 0 {
		config.S3UploadTimeout = time.Duration(c.S3UploadTimeout.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
