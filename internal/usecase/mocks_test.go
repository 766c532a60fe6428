package usecase_test

import (
	"context"
	"errors"
	"testing"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
	"orderapi/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type crudRepoMock[T any] struct{ mock.Mock }

func (m *crudRepoMock[T]) FindAll(ctx context.Context) ([]T, error) {
	args := m.MethodCalled("FindAll", ctx)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}

func (m *crudRepoMock[T]) FindByID(ctx context.Context, id int64) (T, error) {
	args := m.MethodCalled("FindByID", ctx, id)
	e, _ := args.Get(0).(T)
	return e, args.Error(1)
}

func (m *crudRepoMock[T]) Create(ctx context.Context, e T) (T, error) {
	args := m.MethodCalled("Create", ctx, e)
	created, _ := args.Get(0).(T)
	return created, args.Error(1)
}

func (m *crudRepoMock[T]) Update(ctx context.Context, e T) error {
	args := m.MethodCalled("Update", ctx, e)
	return args.Error(0)
}

func (m *crudRepoMock[T]) SoftDelete(ctx context.Context, id int64) error {
	args := m.MethodCalled("SoftDelete", ctx, id)
	return args.Error(0)
}

type CategoryRepoMock struct {
	crudRepoMock[model.Category]
}

type ClientRepoMock struct {
	crudRepoMock[model.Client]
}

type ProductRepoMock struct {
	crudRepoMock[model.Product]
}

func (m *ProductRepoMock) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	args := m.MethodCalled("ListByCategoryID", ctx, categoryID)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

type OrderRepoMock struct {
	crudRepoMock[model.Order]
}

func (m *OrderRepoMock) ListByClientID(ctx context.Context, clientID int64) ([]model.Order, error) {
	args := m.MethodCalled("ListByClientID", ctx, clientID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	args := m.MethodCalled("UpdateTotal", ctx, orderID, total)
	return args.Error(0)
}

func (m *OrderRepoMock) ChangeStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	args := m.MethodCalled("ChangeStatus", ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct {
	crudRepoMock[model.OrderItem]
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.MethodCalled("ListByOrderID", ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// txRepos はモックをそのままトランザクション内リポジトリとして返す
type txRepos struct {
	categories *CategoryRepoMock
	clients    *ClientRepoMock
	products   *ProductRepoMock
	inventory  *InventoryRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	auditLogs  *AuditLogRepoMock
}

func newTxRepos() *txRepos {
	return &txRepos{
		categories: new(CategoryRepoMock),
		clients:    new(ClientRepoMock),
		products:   new(ProductRepoMock),
		inventory:  new(InventoryRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		auditLogs:  new(AuditLogRepoMock),
	}
}

func (r *txRepos) Categories() repo.CategoryRepository  { return r.categories }
func (r *txRepos) Clients() repo.ClientRepository       { return r.clients }
func (r *txRepos) Products() repo.ProductRepository     { return r.products }
func (r *txRepos) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *txRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txRepos) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

func (r *txRepos) assertExpectations(t *testing.T) {
	t.Helper()
	r.categories.AssertExpectations(t)
	r.clients.AssertExpectations(t)
	r.products.AssertExpectations(t)
	r.inventory.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.orderItems.AssertExpectations(t)
	r.auditLogs.AssertExpectations(t)
}

type fakeTxManager struct {
	repos *txRepos
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}

// =====================
// Helpers
// =====================

func requireValidationField(t *testing.T, err error, field string) usecase.FieldError {
	t.Helper()
	ve, ok := usecase.AsValidation(err)
	require.True(t, ok, "want ValidationError, got %v", err)
	for _, fe := range ve.Errors {
		if fe.Field == field {
			return fe
		}
	}
	t.Fatalf("no validation error for field %q in %+v", field, ve.Errors)
	return usecase.FieldError{}
}

func requireNotFound(t *testing.T, err error, entity string, id int64) {
	t.Helper()
	nf, ok := usecase.AsNotFound(err)
	require.True(t, ok, "want NotFoundError, got %v", err)
	require.Equal(t, entity, nf.Entity)
	require.Equal(t, id, nf.ID)
}

var errDB = errors.New("db is down")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq は金額を値で比較する（内部表現の差を無視）
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
