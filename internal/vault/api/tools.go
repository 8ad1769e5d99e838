package api

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/services/generator"
)

type GeneratePasswordRequest struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

type GeneratePasswordResponse struct {
	Response
	Password string
	Strength string
}

func (a *API) GeneratePassword(ctx context.Context, req *GeneratePasswordRequest) *GeneratePasswordResponse {
	pw, strength, err := generator.Generate(generator.Options{
		Length:    req.Length,
		Lowercase: req.Lowercase,
		Uppercase: req.Uppercase,
		Digits:    req.Digits,
		Symbols:   req.Symbols,
	})
	if err != nil {
		return &GeneratePasswordResponse{Response: a.fail(ctx, err)}
	}
	return &GeneratePasswordResponse{Response: ok(), Password: pw, Strength: strength}
}

type BackupRequest struct {
	Operator string
}

type BackupResponse struct {
	Response
	FileName string
}

func (a *API) Backup(ctx context.Context, req *BackupRequest) *BackupResponse {
	name, err := a.maintenance.Backup(ctx, req.Operator)
	if err != nil {
		return &BackupResponse{Response: a.fail(ctx, err)}
	}
	return &BackupResponse{Response: okMsg("backup written"), FileName: name}
}

type RestoreRequest struct {
	FileName string
	Operator string
}

type RestoreResponse struct {
	Response
}

func (a *API) Restore(ctx context.Context, req *RestoreRequest) *RestoreResponse {
	if err := a.maintenance.Restore(ctx, req.FileName, req.Operator); err != nil {
		return &RestoreResponse{Response: a.fail(ctx, err)}
	}
	return &RestoreResponse{Response: okMsg("backup restored, restart the vault to reopen the database")}
}

type ListBackupsResponse struct {
	Response
	FileNames []string
}

func (a *API) ListBackups(ctx context.Context) *ListBackupsResponse {
	names, err := a.maintenance.ListBackups()
	if err != nil {
		return &ListBackupsResponse{Response: a.fail(ctx, err)}
	}
	return &ListBackupsResponse{Response: ok(), FileNames: names}
}

type OperationLogsResponse struct {
	Response
	Logs []models.OperationLog
}

func (a *API) OperationLogs(ctx context.Context) *OperationLogsResponse {
	logs, err := a.maintenance.Logs(ctx)
	if err != nil {
		return &OperationLogsResponse{Response: a.fail(ctx, err)}
	}
	return &OperationLogsResponse{Response: ok(), Logs: logs}
}
