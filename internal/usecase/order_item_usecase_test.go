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

func newOrderItemUsecase() (*usecase.OrderItemUsecase, *txRepos) {
	r := newTxRepos()
	return usecase.NewOrderItemUsecase(&fakeTxManager{repos: r}, r.orderItems), r
}

func TestOrderItemUsecase_Create(t *testing.T) {
	uc, r := newOrderItemUsecase()

	r.orders.On("FindByID", mock.Anything, int64(10)).Return(order(10, 1, model.OrderStatusPending), nil)
	r.products.On("FindByID", mock.Anything, int64(100)).Return(product(100, "2.50", 10), nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(4)).Return(true, nil)
	r.orderItems.On("Create", mock.Anything, mock.MatchedBy(func(it model.OrderItem) bool {
		return it.OrderID == 10 && it.ProductID == 100 && it.Quantity == 4 && it.UnitPrice.Equal(dec("2.5"))
	})).Return(item(1, 10, 100, 4, "2.50"), nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		item(1, 10, 100, 4, "2.50"),
		item(2, 10, 200, 1, "1.25"),
	}, nil)
	r.orders.On("UpdateTotal", mock.Anything, int64(10), decEq("11.25")).Return(nil)

	out, err := uc.Create(context.Background(), usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	r.assertExpectations(t)
}

func TestOrderItemUsecase_Create_OrderNotPending(t *testing.T) {
	uc, r := newOrderItemUsecase()
	r.orders.On("FindByID", mock.Anything, int64(10)).Return(order(10, 1, model.OrderStatusShipped), nil)

	_, err := uc.Create(context.Background(), usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 1})
	fe := requireValidationField(t, err, "order_id")
	assert.Contains(t, fe.Message, "only PENDING")
	r.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestOrderItemUsecase_Create_UnknownOrder(t *testing.T) {
	uc, r := newOrderItemUsecase()
	r.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 1})
	requireValidationField(t, err, "order_id")
}

func TestOrderItemUsecase_Create_InvalidQuantity(t *testing.T) {
	uc, _ := newOrderItemUsecase()

	_, err := uc.Create(context.Background(), usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 0})
	fe := requireValidationField(t, err, "quantity")
	assert.Equal(t, "quantity must be greater than or equal to 1", fe.Message)
}

func TestOrderItemUsecase_Update_SameProductKeepsSnapshot(t *testing.T) {
	uc, r := newOrderItemUsecase()

	r.orderItems.On("FindByID", mock.Anything, int64(1)).Return(item(1, 10, 100, 2, "2.00"), nil)
	r.orders.On("FindByID", mock.Anything, int64(10)).Return(order(10, 1, model.OrderStatusPending), nil)
	r.inventory.On("IncreaseStock", mock.Anything, int64(100), int64(2)).Return(nil)
	// 現在価格は3.00だがスナップショット2.00を維持
	r.products.On("FindByID", mock.Anything, int64(100)).Return(product(100, "3.00", 10), nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(5)).Return(true, nil)
	r.orderItems.On("Update", mock.Anything, mock.MatchedBy(func(it model.OrderItem) bool {
		return it.ID == 1 && it.Quantity == 5 && it.UnitPrice.Equal(dec("2"))
	})).Return(nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{item(1, 10, 100, 5, "2.00")}, nil)
	r.orders.On("UpdateTotal", mock.Anything, int64(10), decEq("10")).Return(nil)

	err := uc.Update(context.Background(), 1, usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 5})
	require.NoError(t, err)
	r.assertExpectations(t)
}

func TestOrderItemUsecase_Update_NotFound(t *testing.T) {
	uc, r := newOrderItemUsecase()
	r.orderItems.On("FindByID", mock.Anything, int64(1)).Return(model.OrderItem{}, repo.ErrNotFound)

	err := uc.Update(context.Background(), 1, usecase.OrderItemRequest{OrderID: 10, ProductID: 100, Quantity: 5})
	requireNotFound(t, err, "order item", 1)
}

func TestOrderItemUsecase_Delete(t *testing.T) {
	uc, r := newOrderItemUsecase()

	r.orderItems.On("FindByID", mock.Anything, int64(1)).Return(item(1, 10, 100, 2, "2.00"), nil)
	r.orders.On("FindByID", mock.Anything, int64(10)).Return(order(10, 1, model.OrderStatusPending), nil)
	r.orderItems.On("SoftDelete", mock.Anything, int64(1)).Return(nil)
	r.inventory.On("IncreaseStock", mock.Anything, int64(100), int64(2)).Return(nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	r.orders.On("UpdateTotal", mock.Anything, int64(10), decEq("0")).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), 1))
	r.assertExpectations(t)
}

func TestOrderItemUsecase_Delete_NotFound(t *testing.T) {
	uc, r := newOrderItemUsecase()
	r.orderItems.On("FindByID", mock.Anything, int64(1)).Return(model.OrderItem{}, repo.ErrNotFound)

	requireNotFound(t, uc.Delete(context.Background(), 1), "order item", 1)
}
