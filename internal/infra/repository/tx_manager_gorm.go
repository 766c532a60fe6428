package repository

import (
	"context"

	repo "orderapi/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	categories repo.CategoryRepository
	clients    repo.ClientRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Categories() repo.CategoryRepository  { return r.categories }
func (r *txReposGorm) Clients() repo.ClientRepository       { return r.clients }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(newTxRepos(tx))
	})
}

func newTxRepos(tx *gorm.DB) *txReposGorm {
	return &txReposGorm{
		categories: NewCategoryGormRepository(tx),
		clients:    NewClientGormRepository(tx),
		products:   NewProductGormRepository(tx),
		inventory:  NewInventoryGormRepository(tx),
		orders:     NewOrderGormRepository(tx),
		orderItems: NewOrderItemGormRepository(tx),
		auditLogs:  NewAuditLogGormRepository(tx),
	}
}
