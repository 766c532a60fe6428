package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
)

const entityCategory = "category"

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, productRepo repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, productRepo: productRepo}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewNotFoundError(entityCategory, id)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("find category %d: %w", id, err)
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryRequest) (model.Category, error) {
	in = normalizeCategory(in)
	if err := validateRequest(in); err != nil {
		return model.Category{}, err
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryRequest) error {
	in = normalizeCategory(in)
	if err := validateRequest(in); err != nil {
		return err
	}

	c, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Name = in.Name
	c.Description = in.Description

	err = u.categoryRepo.Update(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityCategory, id)
	}
	if err != nil {
		return fmt.Errorf("update category %d: %w", id, err)
	}
	return nil
}

// 論理削除。商品は消さない
func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	err := u.categoryRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityCategory, id)
	}
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

// カテゴリに属する有効な商品
func (u *CategoryUsecase) ListProducts(ctx context.Context, id int64) ([]model.Product, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	products, err := u.productRepo.ListByCategoryID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list products of category %d: %w", id, err)
	}
	return products, nil
}

func normalizeCategory(in CategoryRequest) CategoryRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
