package usecase

import (
	"context"
	"errors"
	"fmt"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"
)

const entityOrderItem = "order item"

type OrderItemUsecase struct {
	tx       repo.TransactionManager
	itemRepo repo.OrderItemRepository
}

func NewOrderItemUsecase(tx repo.TransactionManager, itemRepo repo.OrderItemRepository) *OrderItemUsecase {
	return &OrderItemUsecase{tx: tx, itemRepo: itemRepo}
}

func (u *OrderItemUsecase) List(ctx context.Context) ([]model.OrderItem, error) {
	items, err := u.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

func (u *OrderItemUsecase) Get(ctx context.Context, id int64) (model.OrderItem, error) {
	return findOrderItem(ctx, u.itemRepo, id)
}

// 明細追加：価格スナップショット、在庫減算、合計再計算
func (u *OrderItemUsecase) Create(ctx context.Context, in OrderItemRequest) (model.OrderItem, error) {
	if err := validateRequest(in); err != nil {
		return model.OrderItem{}, err
	}

	var out model.OrderItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkOpenOrder(ctx, r.Orders(), in.OrderID); err != nil {
			return err
		}
		p, err := reserveProduct(ctx, r, "", in.ProductID, in.Quantity)
		if err != nil {
			return err
		}

		item, err := r.OrderItems().Create(ctx, model.OrderItem{
			OrderID:   in.OrderID,
			ProductID: p.ID,
			Quantity:  in.Quantity,
			UnitPrice: p.Price,
		})
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
		if err := recalcTotal(ctx, r, in.OrderID); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return model.OrderItem{}, err
	}
	return out, nil
}

// 明細更新：旧明細の在庫を戻してから新しい内容で引き当てる
func (u *OrderItemUsecase) Update(ctx context.Context, id int64, in OrderItemRequest) error {
	if err := validateRequest(in); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := findOrderItem(ctx, r.OrderItems(), id)
		if err != nil {
			return err
		}
		if err := checkOpenOrder(ctx, r.Orders(), in.OrderID); err != nil {
			return err
		}
		if in.OrderID != item.OrderID {
			if err := checkOpenOrder(ctx, r.Orders(), item.OrderID); err != nil {
				return err
			}
		}

		if err := increaseStock(ctx, r, item.ProductID, item.Quantity); err != nil {
			return err
		}
		p, err := reserveProduct(ctx, r, "", in.ProductID, in.Quantity)
		if err != nil {
			return err
		}

		// 同じ商品ならスナップショット価格を維持
		if p.ID != item.ProductID {
			item.UnitPrice = p.Price
		}
		oldOrderID := item.OrderID
		item.OrderID = in.OrderID
		item.ProductID = p.ID
		item.Quantity = in.Quantity

		err = r.OrderItems().Update(ctx, item)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError(entityOrderItem, id)
		}
		if err != nil {
			return fmt.Errorf("update order item %d: %w", id, err)
		}

		if err := recalcTotal(ctx, r, item.OrderID); err != nil {
			return err
		}
		if oldOrderID != item.OrderID {
			return recalcTotal(ctx, r, oldOrderID)
		}
		return nil
	})
}

func (u *OrderItemUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := findOrderItem(ctx, r.OrderItems(), id)
		if err != nil {
			return err
		}
		if err := checkOpenOrder(ctx, r.Orders(), item.OrderID); err != nil {
			return err
		}

		err = r.OrderItems().SoftDelete(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError(entityOrderItem, id)
		}
		if err != nil {
			return fmt.Errorf("delete order item %d: %w", id, err)
		}

		if err := increaseStock(ctx, r, item.ProductID, item.Quantity); err != nil {
			return err
		}
		return recalcTotal(ctx, r, item.OrderID)
	})
}

func findOrderItem(ctx context.Context, items repo.OrderItemRepository, id int64) (model.OrderItem, error) {
	it, err := items.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.OrderItem{}, NewNotFoundError(entityOrderItem, id)
	}
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("find order item %d: %w", id, err)
	}
	return it, nil
}

// 明細を変更できるのはPENDINGの注文だけ
func checkOpenOrder(ctx context.Context, orders repo.OrderRepository, orderID int64) error {
	o, err := orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewValidationError("order_id", fmt.Sprintf("order %d not found", orderID))
	}
	if err != nil {
		return fmt.Errorf("find order %d: %w", orderID, err)
	}
	if o.Status != model.OrderStatusPending {
		return NewValidationError("order_id", fmt.Sprintf("order %d is %s; only PENDING orders can change items", orderID, o.Status))
	}
	return nil
}
