package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
)

const entityClient = "client"

type ClientUsecase struct {
	clientRepo repo.ClientRepository
	orderRepo  repo.OrderRepository
}

func NewClientUsecase(clientRepo repo.ClientRepository, orderRepo repo.OrderRepository) *ClientUsecase {
	return &ClientUsecase{clientRepo: clientRepo, orderRepo: orderRepo}
}

func (u *ClientUsecase) List(ctx context.Context) ([]model.Client, error) {
	clients, err := u.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (u *ClientUsecase) Get(ctx context.Context, id int64) (model.Client, error) {
	c, err := u.clientRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Client{}, NewNotFoundError(entityClient, id)
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("find client %d: %w", id, err)
	}
	return c, nil
}

func (u *ClientUsecase) Create(ctx context.Context, in ClientRequest) (model.Client, error) {
	in = normalizeClient(in)
	if err := validateRequest(in); err != nil {
		return model.Client{}, err
	}

	c, err := u.clientRepo.Create(ctx, model.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return model.Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (u *ClientUsecase) Update(ctx context.Context, id int64, in ClientRequest) error {
	in = normalizeClient(in)
	if err := validateRequest(in); err != nil {
		return err
	}

	c, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address

	err = u.clientRepo.Update(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityClient, id)
	}
	if err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	return nil
}

func (u *ClientUsecase) Delete(ctx context.Context, id int64) error {
	err := u.clientRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError(entityClient, id)
	}
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

func (u *ClientUsecase) ListOrders(ctx context.Context, id int64) ([]model.Order, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	orders, err := u.orderRepo.ListByClientID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list orders of client %d: %w", id, err)
	}
	return orders, nil
}

func normalizeClient(in ClientRequest) ClientRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in
}
