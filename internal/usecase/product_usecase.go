package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
)

const entityProduct = "product"

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError(entityProduct, id)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product %d: %w", id, err)
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductRequest) (model.Product, error) {
	in = normalizeProduct(in)
	if err := validateRequest(in); err != nil {
		return model.Product{}, err
	}
	if err := u.checkCategory(ctx, in.CategoryID); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in ProductRequest) error {
	in = normalizeProduct(in)
	if err := validateRequest(in); err != nil {
		return err
	}

	p, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := u.checkCategory(ctx, in.CategoryID); err != nil {
		return err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.CategoryID = in.CategoryID

	err = u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityProduct, id)
	}
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityProduct, id)
	}
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// 参照先カテゴリが有効か（無ければ検証エラー）
func (u *ProductUsecase) checkCategory(ctx context.Context, categoryID int64) error {
	_, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewValidationError("category_id", fmt.Sprintf("category %d not found", categoryID))
	}
	if err != nil {
		return fmt.Errorf("find category %d: %w", categoryID, err)
	}
	return nil
}

func normalizeProduct(in ProductRequest) ProductRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
