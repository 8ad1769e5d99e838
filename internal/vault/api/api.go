// Package api is the typed command surface consumed by the CLI. Every
// operation takes a request struct and returns a response struct embedding
// Response, so callers always get a uniform success flag and message.
//
// Errors never cross this boundary raw: they are translated to messages
// here, and internal details (driver errors, stack context) stay in the
// logs.
package api

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/envelope"
	"github.com/dmitrijs2005/passvault/internal/vault/services/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/services/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/services/maintenance"
	"github.com/dmitrijs2005/passvault/internal/vault/services/records"
)

// Response is the uniform result envelope embedded in every response type.
type Response struct {
	Success bool
	Message string
}

func ok() Response {
	return Response{Success: true}
}

func okMsg(msg string) Response {
	return Response{Success: true, Message: msg}
}

// API exposes all vault operations to the presentation layer.
type API struct {
	accounts    *accounts.Service
	envelopes   *envelope.Service
	categories  *categories.Service
	records     *records.Service
	maintenance *maintenance.Service
	logger      logging.Logger
}

func New(
	accountsSvc *accounts.Service,
	envelopesSvc *envelope.Service,
	categoriesSvc *categories.Service,
	recordsSvc *records.Service,
	maintenanceSvc *maintenance.Service,
	logger logging.Logger,
) *API {
	return &API{
		accounts:    accountsSvc,
		envelopes:   envelopesSvc,
		categories:  categoriesSvc,
		records:     recordsSvc,
		maintenance: maintenanceSvc,
		logger:      logger.With("component", "api"),
	}
}

// fail logs the error and maps it to a user-facing Response. Validation
// messages pass through verbatim; everything else collapses to a fixed
// phrase so no storage or crypto internals leak to the terminal.
func (a *API) fail(ctx context.Context, err error) Response {
	var msg string
	switch {
	case errors.Is(err, common.ErrValidation):
		msg = err.Error()
	case errors.Is(err, common.ErrWrongSecret):
		msg = "invalid credentials"
	case errors.Is(err, common.ErrUnset):
		msg = "root secret is not set"
	case errors.Is(err, common.ErrAlreadySet):
		msg = "root secret is already set and can only be rotated"
	case errors.Is(err, common.ErrNotFound):
		msg = "not found"
	case errors.Is(err, common.ErrDecryption):
		msg = "unable to decrypt data"
	case errors.Is(err, common.ErrStorage):
		a.logger.Error(ctx, "storage failure", "error", err)
		msg = "storage error, please try again"
	default:
		a.logger.Error(ctx, "operation failed", "error", err)
		msg = "storage error, please try again"
	}
	return Response{Success: false, Message: msg}
}
