package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

var errNotLoggedIn = fmt.Errorf("not logged in")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return errNotLoggedIn
	}
	return nil
}

// Register prompts for a username and password and creates an account.
// The password bytes are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSecret("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter display name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.Register(ctx, &api.RegisterRequest{
		Username: username,
		Password: string(password),
		Name:     name,
	})
	printlnFn(resp.Message)
	if resp.Success {
		a.accountID = resp.AccountID
		a.userName = username
	}
	return nil
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSecret("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp := a.api.Login(ctx, &api.LoginRequest{Username: username, Password: string(password)})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}

	a.accountID = resp.AccountID
	a.userName = username
	printlnFn("Welcome back,", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.logout()
	printlnFn("Logged out")
	return nil
}

// AccountInfo prints the profile, the root secret status and record count.
func (a *App) AccountInfo(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	resp := a.api.AccountInfo(ctx, &api.AccountInfoRequest{AccountID: a.accountID})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}

	acc := resp.Account
	printlnFn("Username:   ", acc.Username)
	printlnFn("Name:       ", acc.Name)
	printlnFn("Email:      ", acc.Email)
	printlnFn("Phone:      ", acc.Phone)
	printlnFn("Records:    ", resp.RecordCount)
	if resp.RootSecretSet {
		printlnFn("Root secret: set, hint:", resp.RootHint)
	} else {
		printlnFn("Root secret: not set (run 'setroot' before adding records)")
	}
	return nil
}

// UpdateAccount prompts for new profile values and saves them.
func (a *App) UpdateAccount(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone", os.Stdout)
	if err != nil {
		return err
	}
	remark, err := getSimpleText(a.reader, "Remark", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.UpdateAccount(ctx, &api.UpdateAccountRequest{
		AccountID: a.accountID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Remark:    remark,
	})
	printlnFn(resp.Message)
	return nil
}

// ChangePassword prompts for the old and new login passwords.
func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	oldPw, err := getSecret("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getSecret("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	resp := a.api.ChangePassword(ctx, &api.ChangePasswordRequest{
		AccountID:   a.accountID,
		OldPassword: string(oldPw),
		NewPassword: string(newPw),
	})
	printlnFn(resp.Message)
	return nil
}

// DeleteAccount removes the account and everything stored under it after
// a confirmation and a password check.
func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	confirmed, err := GetYesNo(a.reader, "Delete this account and ALL of its records?", false, os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	password, err := getSecret("Enter password to confirm", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp := a.api.DeleteAccount(ctx, &api.DeleteAccountRequest{
		AccountID: a.accountID,
		Password:  string(password),
	})
	printlnFn(resp.Message)
	if resp.Success {
		a.logout()
	}
	return nil
}
