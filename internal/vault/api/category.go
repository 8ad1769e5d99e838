package api

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type CreateCategoryRequest struct {
	Code        string
	Name        string
	Description string
}

type CreateCategoryResponse struct {
	Response
	Category *models.Category
}

func (a *API) CreateCategory(ctx context.Context, req *CreateCategoryRequest) *CreateCategoryResponse {
	c, err := a.categories.Create(ctx, req.Code, req.Name, req.Description)
	if err != nil {
		return &CreateCategoryResponse{Response: a.fail(ctx, err)}
	}
	return &CreateCategoryResponse{Response: okMsg("category created"), Category: c}
}

type ListCategoriesRequest struct {
	Descending bool
}

type ListCategoriesResponse struct {
	Response
	Categories []models.Category
}

func (a *API) ListCategories(ctx context.Context, req *ListCategoriesRequest) *ListCategoriesResponse {
	list, err := a.categories.List(ctx, req.Descending)
	if err != nil {
		return &ListCategoriesResponse{Response: a.fail(ctx, err)}
	}
	return &ListCategoriesResponse{Response: ok(), Categories: list}
}

type UpdateCategoryRequest struct {
	ID          string
	Code        string
	Name        string
	Description string
}

type UpdateCategoryResponse struct {
	Response
}

func (a *API) UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) *UpdateCategoryResponse {
	if err := a.categories.Update(ctx, req.ID, req.Code, req.Name, req.Description); err != nil {
		return &UpdateCategoryResponse{Response: a.fail(ctx, err)}
	}
	return &UpdateCategoryResponse{Response: okMsg("category updated")}
}

type DeleteCategoryRequest struct {
	ID string
}

type DeleteCategoryResponse struct {
	Response
}

func (a *API) DeleteCategory(ctx context.Context, req *DeleteCategoryRequest) *DeleteCategoryResponse {
	if err := a.categories.Delete(ctx, req.ID); err != nil {
		return &DeleteCategoryResponse{Response: a.fail(ctx, err)}
	}
	return &DeleteCategoryResponse{Response: okMsg("category deleted")}
}

type ReorderCategoriesRequest struct {
	IDs []string
}

type ReorderCategoriesResponse struct {
	Response
}

func (a *API) ReorderCategories(ctx context.Context, req *ReorderCategoriesRequest) *ReorderCategoriesResponse {
	if err := a.categories.Reorder(ctx, req.IDs); err != nil {
		return &ReorderCategoriesResponse{Response: a.fail(ctx, err)}
	}
	return &ReorderCategoriesResponse{Response: okMsg("categories reordered")}
}
