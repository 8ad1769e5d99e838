package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

// promptRecordInput collects the plaintext attributes of a record.
func (a *App) promptRecordInput() (*api.RecordInput, error) {
	categoryID, err := getSimpleText(a.reader, "Category id (see 'cats')", os.Stdout)
	if err != nil {
		return nil, err
	}
	platform, err := getSimpleText(a.reader, "Platform name (e.g. example.com)", os.Stdout)
	if err != nil {
		return nil, err
	}
	account, err := getSimpleText(a.reader, "Platform account (login)", os.Stdout)
	if err != nil {
		return nil, err
	}
	secret, err := getSecret("Secret (password, key, pin)", os.Stdout)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(secret)

	extra, err := getSimpleText(a.reader, "Confidential note (optional, stored encrypted)", os.Stdout)
	if err != nil {
		return nil, err
	}
	email, err := getSimpleText(a.reader, "Related email (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	phone, err := getSimpleText(a.reader, "Related phone (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	remark, err := getSimpleText(a.reader, "Remark (optional, stored in plaintext)", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &api.RecordInput{
		CategoryID:      categoryID,
		PlatformName:    platform,
		PlatformAccount: account,
		Secret:          string(secret),
		Extra:           extra,
		RelatedEmail:    email,
		RelatedPhone:    phone,
		Remark:          remark,
	}, nil
}

func (a *App) AddRecord(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	input, err := a.promptRecordInput()
	if err != nil {
		return err
	}

	resp := a.api.CreateRecord(ctx, &api.CreateRecordRequest{AccountID: a.accountID, Input: *input})
	printlnFn(resp.Message)
	return nil
}

func (a *App) ListRecords(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	filter, err := getSimpleText(a.reader, "Filter by platform name (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.ListRecords(ctx, &api.ListRecordsRequest{
		AccountID:    a.accountID,
		PlatformName: filter,
	})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	if len(resp.Records) == 0 {
		printlnFn("No records found")
		return nil
	}
	for i, r := range resp.Records {
		printlnFn(fmt.Sprintf("%2d. %s / %s  [%s]  (id %s)", i+1, r.PlatformName, r.PlatformAccount, r.CategoryName, r.ID))
	}
	return nil
}

func (a *App) ShowRecord(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Record id", os.Stdout)
	if err != nil {
		return err
	}
	rootSecret, err := getSecret("Root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rootSecret)

	resp := a.api.RecordDetail(ctx, &api.RecordDetailRequest{
		AccountID:  a.accountID,
		RecordID:   id,
		RootSecret: rootSecret,
	})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}

	r := resp.Record
	printlnFn("Platform: ", r.PlatformName)
	printlnFn("Account:  ", r.PlatformAccount)
	printlnFn("Category: ", r.CategoryName)
	printlnFn("Secret:   ", resp.Secret)
	if resp.Extra != "" {
		printlnFn("Note:     ", resp.Extra)
	}
	if r.RelatedEmail != "" {
		printlnFn("Email:    ", r.RelatedEmail)
	}
	if r.RelatedPhone != "" {
		printlnFn("Phone:    ", r.RelatedPhone)
	}
	if r.Remark != "" {
		printlnFn("Remark:   ", r.Remark)
	}
	return nil
}

func (a *App) EditRecord(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Record id", os.Stdout)
	if err != nil {
		return err
	}
	rootSecret, err := getSecret("Root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rootSecret)

	input, err := a.promptRecordInput()
	if err != nil {
		return err
	}

	resp := a.api.UpdateRecord(ctx, &api.UpdateRecordRequest{
		AccountID:  a.accountID,
		RecordID:   id,
		RootSecret: rootSecret,
		Input:      *input,
	})
	printlnFn(resp.Message)
	return nil
}

func (a *App) DeleteRecord(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Record id", os.Stdout)
	if err != nil {
		return err
	}
	confirmed, err := GetYesNo(a.reader, "Delete this record?", false, os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	rootSecret, err := getSecret("Root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rootSecret)

	resp := a.api.DeleteRecord(ctx, &api.DeleteRecordRequest{
		AccountID:  a.accountID,
		RecordID:   id,
		RootSecret: rootSecret,
	})
	printlnFn(resp.Message)
	return nil
}

// ShowHistory lists the audit trail of a record and optionally decrypts a
// single snapshot.
func (a *App) ShowHistory(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Record id", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.RecordHistory(ctx, &api.RecordHistoryRequest{AccountID: a.accountID, RecordID: id})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	if len(resp.Entries) == 0 {
		printlnFn("No history for this record")
		return nil
	}
	for i, e := range resp.Entries {
		printlnFn(fmt.Sprintf("%2d. %s  %s  %s / %s  (entry %s)",
			i+1, e.OperatedAt.Format("2006-01-02 15:04:05"), e.Operation, e.PlatformName, e.PlatformAccount, e.ID))
	}

	entryID, err := getSimpleText(a.reader, "Entry id to decrypt (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if entryID == "" {
		return nil
	}

	rootSecret, err := getSecret("Root secret", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rootSecret)

	detail := a.api.HistoryDetail(ctx, &api.HistoryDetailRequest{
		AccountID:  a.accountID,
		EntryID:    entryID,
		RootSecret: rootSecret,
	})
	if !detail.Success {
		printlnFn(detail.Message)
		return nil
	}
	printlnFn("Secret:", detail.Secret)
	if detail.Extra != "" {
		printlnFn("Note:  ", detail.Extra)
	}
	return nil
}
