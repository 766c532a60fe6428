package usecase_test

import (
	"context"
	"testing"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
	"orderapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientUsecase_Create(t *testing.T) {
	cRepo := new(ClientRepoMock)
	uc := usecase.NewClientUsecase(cRepo, new(OrderRepoMock))

	cRepo.On("Create", mock.Anything, model.Client{
		Name:  "Ana",
		Email: "ana@example.com",
		Phone: "555-0100",
	}).Return(model.Client{Name: "Ana"}, nil)

	_, err := uc.Create(context.Background(), usecase.ClientRequest{
		Name:  "Ana",
		Email: " Ana@Example.com ",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	cRepo.AssertExpectations(t)
}

func TestClientUsecase_Create_InvalidEmail(t *testing.T) {
	uc := usecase.NewClientUsecase(new(ClientRepoMock), new(OrderRepoMock))

	_, err := uc.Create(context.Background(), usecase.ClientRequest{Name: "Ana", Email: "nope", Phone: "1"})
	fe := requireValidationField(t, err, "email")
	assert.Equal(t, "email must be a valid email address", fe.Message)
}

func TestClientUsecase_ListOrders(t *testing.T) {
	cRepo := new(ClientRepoMock)
	oRepo := new(OrderRepoMock)
	uc := usecase.NewClientUsecase(cRepo, oRepo)

	cRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Client{Name: "Ana"}, nil)
	oRepo.On("ListByClientID", mock.Anything, int64(1)).Return([]model.Order{{ClientID: 1}}, nil)
	cRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Client{}, repo.ErrNotFound)

	out, err := uc.ListOrders(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = uc.ListOrders(context.Background(), 2)
	requireNotFound(t, err, "client", 2)
}
