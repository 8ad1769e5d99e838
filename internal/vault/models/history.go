package models

import "time"

// History operation tags.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// HistoryEntry is an immutable audit snapshot of a record taken at every
// mutation. It stores ciphertext, never plaintext. Entries survive record
// deletion and are only removed when the owning account is deleted.
type HistoryEntry struct {
	ID               string
	RecordID         string
	AccountID        string
	CategoryID       string
	CategoryName     string // joined on read
	PlatformName     string
	PlatformAccount  string
	SecretCiphertext string
	ExtraCiphertext  string
	RelatedEmail     string
	RelatedPhone     string
	Remark           string
	Operation        string
	OperatedAt       time.Time
}
