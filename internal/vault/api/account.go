package api

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type RegisterRequest struct {
	Username string
	Password string
	Name     string
}

type RegisterResponse struct {
	Response
	AccountID string
}

func (a *API) Register(ctx context.Context, req *RegisterRequest) *RegisterResponse {
	acc, err := a.accounts.Register(ctx, req.Username, req.Password, req.Name)
	if err != nil {
		return &RegisterResponse{Response: a.fail(ctx, err)}
	}
	return &RegisterResponse{Response: okMsg("account created"), AccountID: acc.ID}
}

type LoginRequest struct {
	Username string
	Password string
}

type LoginResponse struct {
	Response
	AccountID string
	Name      string
}

func (a *API) Login(ctx context.Context, req *LoginRequest) *LoginResponse {
	acc, err := a.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		return &LoginResponse{Response: a.fail(ctx, err)}
	}
	return &LoginResponse{Response: ok(), AccountID: acc.ID, Name: acc.Name}
}

type AccountInfoRequest struct {
	AccountID string
}

type AccountInfoResponse struct {
	Response
	Account       *models.Account
	RootSecretSet bool
	RootHint      string
	RecordCount   int
}

func (a *API) AccountInfo(ctx context.Context, req *AccountInfoRequest) *AccountInfoResponse {
	info, err := a.accounts.GetInfo(ctx, req.AccountID)
	if err != nil {
		return &AccountInfoResponse{Response: a.fail(ctx, err)}
	}
	return &AccountInfoResponse{
		Response:      ok(),
		Account:       info.Account,
		RootSecretSet: info.RootSecretSet,
		RootHint:      info.RootHint,
		RecordCount:   info.RecordCount,
	}
}

type UpdateAccountRequest struct {
	AccountID string
	Name      string
	Email     string
	Phone     string
	Remark    string
}

type UpdateAccountResponse struct {
	Response
}

func (a *API) UpdateAccount(ctx context.Context, req *UpdateAccountRequest) *UpdateAccountResponse {
	err := a.accounts.UpdateInfo(ctx, req.AccountID, req.Name, req.Email, req.Phone, req.Remark)
	if err != nil {
		return &UpdateAccountResponse{Response: a.fail(ctx, err)}
	}
	return &UpdateAccountResponse{Response: okMsg("account updated")}
}

type ChangePasswordRequest struct {
	AccountID   string
	OldPassword string
	NewPassword string
}

type ChangePasswordResponse struct {
	Response
}

func (a *API) ChangePassword(ctx context.Context, req *ChangePasswordRequest) *ChangePasswordResponse {
	err := a.accounts.ChangePassword(ctx, req.AccountID, req.OldPassword, req.NewPassword)
	if err != nil {
		return &ChangePasswordResponse{Response: a.fail(ctx, err)}
	}
	return &ChangePasswordResponse{Response: okMsg("password changed")}
}

type DeleteAccountRequest struct {
	AccountID string
	Password  string
}

type DeleteAccountResponse struct {
	Response
}

func (a *API) DeleteAccount(ctx context.Context, req *DeleteAccountRequest) *DeleteAccountResponse {
	if err := a.accounts.Delete(ctx, req.AccountID, req.Password); err != nil {
		return &DeleteAccountResponse{Response: a.fail(ctx, err)}
	}
	return &DeleteAccountResponse{Response: okMsg("account and all its records deleted")}
}
