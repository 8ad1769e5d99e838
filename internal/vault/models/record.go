package models

import "time"

// Record is one stored platform credential. Metadata fields are plaintext;
// SecretCiphertext and ExtraCiphertext are base64 RSA-OAEP blobs encrypted
// under the account's current public key, each independently decryptable.
// ExtraCiphertext is empty when the record has no confidential note.
type Record struct {
	ID               string
	AccountID        string
	CategoryID       string
	CategoryName     string // joined on read, not stored
	PlatformName     string
	PlatformAccount  string
	SecretCiphertext string
	ExtraCiphertext  string
	RelatedEmail     string
	RelatedPhone     string
	Remark           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
