package api

import "context"

type SetRootSecretRequest struct {
	AccountID string
	Secret    []byte
	Hint      string
}

type SetRootSecretResponse struct {
	Response
}

func (a *API) SetRootSecret(ctx context.Context, req *SetRootSecretRequest) *SetRootSecretResponse {
	if len(req.Secret) == 0 {
		return &SetRootSecretResponse{Response: Response{Message: "root secret must not be empty"}}
	}
	if err := a.envelopes.SetRootSecret(ctx, req.AccountID, req.Secret, req.Hint); err != nil {
		return &SetRootSecretResponse{Response: a.fail(ctx, err)}
	}
	return &SetRootSecretResponse{Response: okMsg("root secret set")}
}

type RotateRootSecretRequest struct {
	AccountID string
	OldSecret []byte
	NewSecret []byte
	NewHint   string
}

type RotateRootSecretResponse struct {
	Response
}

func (a *API) RotateRootSecret(ctx context.Context, req *RotateRootSecretRequest) *RotateRootSecretResponse {
	if len(req.NewSecret) == 0 {
		return &RotateRootSecretResponse{Response: Response{Message: "new root secret must not be empty"}}
	}
	if err := a.envelopes.RotateRootSecret(ctx, req.AccountID, req.OldSecret, req.NewSecret, req.NewHint); err != nil {
		return &RotateRootSecretResponse{Response: a.fail(ctx, err)}
	}
	return &RotateRootSecretResponse{Response: okMsg("root secret rotated, stored records remain readable")}
}

type RootStatusRequest struct {
	AccountID string
}

type RootStatusResponse struct {
	Response
	Set  bool
	Hint string
}

func (a *API) RootStatus(ctx context.Context, req *RootStatusRequest) *RootStatusResponse {
	set, hint, err := a.envelopes.Status(ctx, req.AccountID)
	if err != nil {
		return &RootStatusResponse{Response: a.fail(ctx, err)}
	}
	return &RootStatusResponse{Response: ok(), Set: set, Hint: hint}
}
