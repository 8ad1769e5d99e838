package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

// Generate builds a random password from interactively chosen options.
// Available without login, so it can be used while registering elsewhere.
func (a *App) Generate(ctx context.Context) error {
	lengthStr, err := getSimpleText(a.reader, "Length (6-64)", os.Stdout)
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		printlnFn("Length must be a number")
		return nil
	}

	lower, err := GetYesNo(a.reader, "Lowercase letters?", true, os.Stdout)
	if err != nil {
		return err
	}
	upper, err := GetYesNo(a.reader, "Uppercase letters?", true, os.Stdout)
	if err != nil {
		return err
	}
	digits, err := GetYesNo(a.reader, "Digits?", true, os.Stdout)
	if err != nil {
		return err
	}
	symbols, err := GetYesNo(a.reader, "Symbols?", false, os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.GeneratePassword(ctx, &api.GeneratePasswordRequest{
		Length:    length,
		Lowercase: lower,
		Uppercase: upper,
		Digits:    digits,
		Symbols:   symbols,
	})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	printlnFn(fmt.Sprintf("%s  (strength: %s)", resp.Password, resp.Strength))
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	resp := a.api.Backup(ctx, &api.BackupRequest{Operator: a.userName})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	printlnFn("Backup written:", resp.FileName)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	list := a.api.ListBackups(ctx)
	if !list.Success {
		printlnFn(list.Message)
		return nil
	}
	if len(list.FileNames) == 0 {
		printlnFn("No backups found")
		return nil
	}
	for i, name := range list.FileNames {
		printlnFn(fmt.Sprintf("%2d. %s", i+1, name))
	}

	name, err := getSimpleText(a.reader, "Backup file name", os.Stdout)
	if err != nil {
		return err
	}
	confirmed, err := GetYesNo(a.reader, "Overwrite the current database with this backup?", false, os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	resp := a.api.Restore(ctx, &api.RestoreRequest{FileName: name, Operator: a.userName})
	printlnFn(resp.Message)
	return nil
}

func (a *App) ShowLogs(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	resp := a.api.OperationLogs(ctx)
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	if len(resp.Logs) == 0 {
		printlnFn("No maintenance operations yet")
		return nil
	}
	for _, l := range resp.Logs {
		printlnFn(fmt.Sprintf("%s  %-8s %s  by %s",
			l.OperatedAt.Format("2006-01-02 15:04:05"), l.Operation, l.FileName, l.Operator))
	}
	return nil
}
