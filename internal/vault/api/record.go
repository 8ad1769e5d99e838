package api

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/services/records"
)

// RecordInput carries the plaintext record attributes on create and update.
type RecordInput struct {
	CategoryID      string
	PlatformName    string
	PlatformAccount string
	Secret          string
	Extra           string
	RelatedEmail    string
	RelatedPhone    string
	Remark          string
}

func (in *RecordInput) toService() *records.Input {
	return &records.Input{
		CategoryID:      in.CategoryID,
		PlatformName:    in.PlatformName,
		PlatformAccount: in.PlatformAccount,
		Secret:          in.Secret,
		Extra:           in.Extra,
		RelatedEmail:    in.RelatedEmail,
		RelatedPhone:    in.RelatedPhone,
		Remark:          in.Remark,
	}
}

type CreateRecordRequest struct {
	AccountID string
	Input     RecordInput
}

type CreateRecordResponse struct {
	Response
	RecordID string
}

func (a *API) CreateRecord(ctx context.Context, req *CreateRecordRequest) *CreateRecordResponse {
	rec, err := a.records.Create(ctx, req.AccountID, req.Input.toService())
	if err != nil {
		return &CreateRecordResponse{Response: a.fail(ctx, err)}
	}
	return &CreateRecordResponse{Response: okMsg("record created"), RecordID: rec.ID}
}

type UpdateRecordRequest struct {
	AccountID  string
	RecordID   string
	RootSecret []byte
	Input      RecordInput
}

type UpdateRecordResponse struct {
	Response
}

func (a *API) UpdateRecord(ctx context.Context, req *UpdateRecordRequest) *UpdateRecordResponse {
	err := a.records.Update(ctx, req.AccountID, req.RecordID, req.RootSecret, req.Input.toService())
	if err != nil {
		return &UpdateRecordResponse{Response: a.fail(ctx, err)}
	}
	return &UpdateRecordResponse{Response: okMsg("record updated")}
}

type DeleteRecordRequest struct {
	AccountID  string
	RecordID   string
	RootSecret []byte
}

type DeleteRecordResponse struct {
	Response
}

func (a *API) DeleteRecord(ctx context.Context, req *DeleteRecordRequest) *DeleteRecordResponse {
	if err := a.records.Delete(ctx, req.AccountID, req.RecordID, req.RootSecret); err != nil {
		return &DeleteRecordResponse{Response: a.fail(ctx, err)}
	}
	return &DeleteRecordResponse{Response: okMsg("record deleted")}
}

type ListRecordsRequest struct {
	AccountID    string
	CategoryID   string
	PlatformName string
}

type ListRecordsResponse struct {
	Response
	Records []models.Record
}

func (a *API) ListRecords(ctx context.Context, req *ListRecordsRequest) *ListRecordsResponse {
	list, err := a.records.List(ctx, req.AccountID, records.Filter{
		CategoryID:   req.CategoryID,
		PlatformName: req.PlatformName,
	})
	if err != nil {
		return &ListRecordsResponse{Response: a.fail(ctx, err)}
	}
	return &ListRecordsResponse{Response: ok(), Records: list}
}

type RecordDetailRequest struct {
	AccountID  string
	RecordID   string
	RootSecret []byte
}

type RecordDetailResponse struct {
	Response
	Record *models.Record
	Secret string
	Extra  string
}

func (a *API) RecordDetail(ctx context.Context, req *RecordDetailRequest) *RecordDetailResponse {
	d, err := a.records.Detail(ctx, req.AccountID, req.RecordID, req.RootSecret)
	if err != nil {
		return &RecordDetailResponse{Response: a.fail(ctx, err)}
	}
	return &RecordDetailResponse{Response: ok(), Record: d.Record, Secret: d.Secret, Extra: d.Extra}
}

type RecordHistoryRequest struct {
	AccountID string
	RecordID  string
}

type RecordHistoryResponse struct {
	Response
	Entries []models.HistoryEntry
}

func (a *API) RecordHistory(ctx context.Context, req *RecordHistoryRequest) *RecordHistoryResponse {
	entries, err := a.records.History(ctx, req.AccountID, req.RecordID)
	if err != nil {
		return &RecordHistoryResponse{Response: a.fail(ctx, err)}
	}
	return &RecordHistoryResponse{Response: ok(), Entries: entries}
}

type HistoryDetailRequest struct {
	AccountID  string
	EntryID    string
	RootSecret []byte
}

type HistoryDetailResponse struct {
	Response
	Entry  *models.HistoryEntry
	Secret string
	Extra  string
}

func (a *API) HistoryDetail(ctx context.Context, req *HistoryDetailRequest) *HistoryDetailResponse {
	d, err := a.records.HistoryDetail(ctx, req.AccountID, req.EntryID, req.RootSecret)
	if err != nil {
		return &HistoryDetailResponse{Response: a.fail(ctx, err)}
	}
	return &HistoryDetailResponse{Response: ok(), Entry: d.Entry, Secret: d.Secret, Extra: d.Extra}
}
