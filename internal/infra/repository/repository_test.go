package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"orderapi/internal/config"
	"orderapi/internal/domain/model"
	"orderapi/internal/infra/db"
	repo "orderapi/internal/repository"
	"orderapi/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Connect(config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}, logger.Nop(), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

func seedCategory(t *testing.T, r *CategoryGormRepository, name string) model.Category {
	t.Helper()
	c, err := r.Create(context.Background(), model.Category{Name: name, Description: name + " desc"})
	require.NoError(t, err)
	return c
}

func TestCategoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewCategoryGormRepository(newTestDB(t))

	created := seedCategory(t, r, "Drinks")
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.DeletedAt)

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", got.Name)

	got.Name = "Beverages"
	got.Description = ""
	require.NoError(t, r.Update(ctx, got))

	updated, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", updated.Name)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.IsActive)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoryRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewCategoryGormRepository(gormDB)

	keep := seedCategory(t, r, "Keep")
	gone := seedCategory(t, r, "Gone")

	require.NoError(t, r.SoftDelete(ctx, gone.ID))

	_, err := r.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	// 行は残り、is_active=false かつ deleted_at がセットされる
	var raw model.Category
	require.NoError(t, gormDB.First(&raw, gone.ID).Error)
	assert.False(t, raw.IsActive)
	assert.NotNil(t, raw.DeletedAt)

	assert.ErrorIs(t, r.SoftDelete(ctx, gone.ID), repo.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, raw), repo.ErrNotFound)
}

func TestCategoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := NewCategoryGormRepository(newTestDB(t))

	_, err := r.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	missing := model.Category{Name: "x", Description: "y"}
	missing.ID = 999
	assert.ErrorIs(t, r.Update(ctx, missing), repo.ErrNotFound)
	assert.ErrorIs(t, r.SoftDelete(ctx, 999), repo.ErrNotFound)
}

func TestProductRepository_ListByCategoryID(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	cats := NewCategoryGormRepository(gormDB)
	products := NewProductGormRepository(gormDB)

	a := seedCategory(t, cats, "A")
	b := seedCategory(t, cats, "B")

	p1, err := products.Create(ctx, model.Product{Name: "p1", Price: decimal.RequireFromString("10.50"), Stock: 1, CategoryID: a.ID})
	require.NoError(t, err)
	p2, err := products.Create(ctx, model.Product{Name: "p2", Price: decimal.RequireFromString("3"), Stock: 1, CategoryID: a.ID})
	require.NoError(t, err)
	_, err = products.Create(ctx, model.Product{Name: "p3", Price: decimal.RequireFromString("1"), Stock: 1, CategoryID: b.ID})
	require.NoError(t, err)

	require.NoError(t, products.SoftDelete(ctx, p2.ID))

	list, err := products.ListByCategoryID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p1.ID, list[0].ID)
	assert.True(t, decimal.RequireFromString("10.5").Equal(list[0].Price))
}

func TestInventoryRepository_DecreaseAndIncrease(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	cats := NewCategoryGormRepository(gormDB)
	products := NewProductGormRepository(gormDB)
	inv := NewInventoryGormRepository(gormDB)

	c := seedCategory(t, cats, "C")
	p, err := products.Create(ctx, model.Product{Name: "p", Price: decimal.NewFromInt(1), Stock: 5, CategoryID: c.ID})
	require.NoError(t, err)

	ok, err := inv.DecreaseStockIfEnough(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inv.DecreaseStockIfEnough(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, inv.IncreaseStock(ctx, p.ID, 1))

	got, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stock)

	assert.ErrorIs(t, inv.IncreaseStock(ctx, 999, 1), repo.ErrNotFound)
}

func TestOrderRepositories(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	clients := NewClientGormRepository(gormDB)
	orders := NewOrderGormRepository(gormDB)
	items := NewOrderItemGormRepository(gormDB)

	cl, err := clients.Create(ctx, model.Client{Name: "Ana", Email: "ana@example.com", Phone: "123"})
	require.NoError(t, err)

	o, err := orders.Create(ctx, model.Order{ClientID: cl.ID, OrderDate: time.Now(), Status: model.OrderStatusPending})
	require.NoError(t, err)

	_, err = items.Create(ctx, model.OrderItem{OrderID: o.ID, ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	second, err := items.Create(ctx, model.OrderItem{OrderID: o.ID, ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")})
	require.NoError(t, err)
	require.NoError(t, items.SoftDelete(ctx, second.ID))

	list, err := items.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, orders.UpdateTotal(ctx, o.ID, decimal.RequireFromString("5.00")))
	got, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(got.TotalAmount))

	byClient, err := orders.ListByClientID(ctx, cl.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	assert.ErrorIs(t, orders.UpdateTotal(ctx, 999, decimal.Zero), repo.ErrNotFound)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	tm := NewTxManagerGorm(gormDB)

	boom := assert.AnError
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Categories().Create(ctx, model.Category{Name: "tx", Description: "tx"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := NewCategoryGormRepository(gormDB).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAuditLogRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	r := NewAuditLogGormRepository(newTestDB(t))
	now := time.Now()

	for i, id := range []int64{1, 2, 1} {
		require.NoError(t, r.Create(ctx, model.AuditLog{
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   id,
			AfterJSON:    `{"n":` + string(rune('0'+i)) + `}`,
			CreatedAt:    now,
		}))
	}

	orderID := int64(1)
	logs, err := r.List(ctx, repo.AuditLogFilter{ResourceID: &orderID})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Greater(t, logs[0].ID, logs[1].ID)
	assert.Equal(t, `{"n":2}`, logs[0].AfterJSON)

	logs, err = r.List(ctx, repo.AuditLogFilter{ResourceID: &orderID, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `{"n":0}`, logs[0].AfterJSON)

	deleted := model.AuditActionDeleteOrder
	logs, err = r.List(ctx, repo.AuditLogFilter{Action: &deleted})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAuditLogRepository_LimitIsCapped(t *testing.T) {
	ctx := context.Background()
	r := NewAuditLogGormRepository(newTestDB(t))

	for i := 0; i < maxAuditLimit+10; i++ {
		require.NoError(t, r.Create(ctx, model.AuditLog{
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   1,
			CreatedAt:    time.Now(),
		}))
	}

	logs, err := r.List(ctx, repo.AuditLogFilter{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, logs, maxAuditLimit)

	logs, err = r.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	assert.Len(t, logs, defaultAuditLimit)
}

func TestOrderRepository_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	clients := NewClientGormRepository(gormDB)
	orders := NewOrderGormRepository(gormDB)

	cl, err := clients.Create(ctx, model.Client{Name: "Ana", Email: "ana@example.com", Phone: "123"})
	require.NoError(t, err)
	o, err := orders.Create(ctx, model.Order{ClientID: cl.ID, OrderDate: time.Now(), Status: model.OrderStatusPending})
	require.NoError(t, err)

	ok, err := orders.ChangeStatus(ctx, o.ID, model.OrderStatusPending, model.OrderStatusCanceled)
	require.NoError(t, err)
	assert.True(t, ok)

	// 2回目は既に PENDING ではないので変わらない
	ok, err = orders.ChangeStatus(ctx, o.ID, model.OrderStatusPending, model.OrderStatusCanceled)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, got.Status)

	require.NoError(t, orders.SoftDelete(ctx, o.ID))
	ok, err = orders.ChangeStatus(ctx, o.ID, model.OrderStatusCanceled, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.False(t, ok)
}
