// Package models defines the persisted entities of the vault.
package models

import "time"

// Account is the vault owner's identity. PasswordHash is the opaque login
// digest; the root-secret material lives in the account's RootEnvelope.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Phone        string
	Remark       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
