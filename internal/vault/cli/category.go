package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

func (a *App) AddCategory(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Code (short unique tag, e.g. web)", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.CreateCategory(ctx, &api.CreateCategoryRequest{
		Code:        code,
		Name:        name,
		Description: description,
	})
	printlnFn(resp.Message)
	return nil
}

func (a *App) ListCategories(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	resp := a.api.ListCategories(ctx, &api.ListCategoriesRequest{})
	if !resp.Success {
		printlnFn(resp.Message)
		return nil
	}
	if len(resp.Categories) == 0 {
		printlnFn("No categories yet, use 'addcat' to create one")
		return nil
	}
	for i, c := range resp.Categories {
		printlnFn(fmt.Sprintf("%2d. [%s] %s  %s  (id %s)", i+1, c.Code, c.Name, c.Description, c.ID))
	}
	return nil
}

func (a *App) EditCategory(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Category id", os.Stdout)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "New code", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description", os.Stdout)
	if err != nil {
		return err
	}

	resp := a.api.UpdateCategory(ctx, &api.UpdateCategoryRequest{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: description,
	})
	printlnFn(resp.Message)
	return nil
}

func (a *App) DeleteCategory(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Category id", os.Stdout)
	if err != nil {
		return err
	}
	confirmed, err := GetYesNo(a.reader, "Delete this category?", false, os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	resp := a.api.DeleteCategory(ctx, &api.DeleteCategoryRequest{ID: id})
	printlnFn(resp.Message)
	return nil
}
