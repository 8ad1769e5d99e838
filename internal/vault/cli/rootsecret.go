package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

// SetRootSecret establishes the root secret for the logged-in account.
// The secret is asked for twice to catch typos: it cannot be recovered,
// only rotated while the old value is still known.
func (a *App) SetRootSecret(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	secret, err := getSecret("Enter root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	confirm, err := getSecret("Repeat root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(secret) != string(confirm) {
		printlnFn("Secrets do not match")
		return nil
	}

	hint, err := getSimpleText(a.reader, "Enter a hint (optional, stored in plaintext)", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.SetRootSecret(ctx, &api.SetRootSecretRequest{
		AccountID: a.accountID,
		Secret:    secret,
		Hint:      hint,
	})
	printlnFn(resp.Message)
	return nil
}

// RotateRootSecret replaces the root secret. Stored records stay readable:
// only the key wrapping changes, never the record ciphertext.
func (a *App) RotateRootSecret(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	oldSecret, err := getSecret("Current root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldSecret)

	newSecret, err := getSecret("New root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newSecret)

	confirm, err := getSecret("Repeat new root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(newSecret) != string(confirm) {
		printlnFn("Secrets do not match")
		return nil
	}

	hint, err := getSimpleText(a.reader, "Enter a new hint (optional)", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.RotateRootSecret(ctx, &api.RotateRootSecretRequest{
		AccountID: a.accountID,
		OldSecret: oldSecret,
		NewSecret: newSecret,
		NewHint:   hint,
	})
	printlnFn(resp.Message)
	return nil
}
