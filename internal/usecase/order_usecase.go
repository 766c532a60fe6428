package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"

	"github.com/shopspring/decimal"
)

const entityOrder = "order"

type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	itemRepo  repo.OrderItemRepository
	auditRepo repo.AuditLogRepository
	now       func() time.Time
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	auditRepo repo.AuditLogRepository,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo, itemRepo: itemRepo, auditRepo: auditRepo, now: time.Now}
}

func (u *OrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// 明細つきで返す
func (u *OrderUsecase) Get(ctx context.Context, id int64) (model.Order, error) {
	o, err := findOrder(ctx, u.orderRepo, id)
	if err != nil {
		return model.Order{}, err
	}
	items, err := u.itemRepo.ListByOrderID(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("list items of order %d: %w", id, err)
	}
	o.Items = items
	return o, nil
}

func (u *OrderUsecase) ListItems(ctx context.Context, id int64) ([]model.OrderItem, error) {
	o, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

// History は注文の変更履歴を新しい順に返す。削除済みの注文でも履歴は見える。
func (u *OrderUsecase) History(ctx context.Context, id int64, limit, offset int) ([]model.AuditLog, error) {
	resource := model.AuditResourceOrder
	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		ResourceType: &resource,
		ResourceID:   &id,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list history of order %d: %w", id, err)
	}
	if len(logs) > 0 {
		return logs, nil
	}

	// ページが空でも履歴自体があれば 200
	if offset > 0 {
		first, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
			ResourceType: &resource,
			ResourceID:   &id,
			Limit:        1,
		})
		if err != nil {
			return nil, fmt.Errorf("list history of order %d: %w", id, err)
		}
		if len(first) > 0 {
			return logs, nil
		}
	}
	// 履歴が無いなら注文の存在だけ確認する
	if _, err := findOrder(ctx, u.orderRepo, id); err != nil {
		return nil, err
	}
	return logs, nil
}

// 注文作成。明細があれば同じトランザクションで在庫を減らして合計を確定する
func (u *OrderUsecase) Create(ctx context.Context, in OrderRequest) (model.Order, error) {
	if err := validateRequest(in); err != nil {
		return model.Order{}, err
	}

	status := model.OrderStatusPending
	if in.Status != "" {
		status = model.OrderStatus(in.Status)
	}
	if status == model.OrderStatusCanceled && len(in.Items) > 0 {
		return model.Order{}, NewValidationError("status", "a canceled order cannot be created with items")
	}
	orderDate := u.now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkClient(ctx, r.Clients(), in.ClientID); err != nil {
			return err
		}

		o, err := r.Orders().Create(ctx, model.Order{
			ClientID:    in.ClientID,
			OrderDate:   orderDate,
			Status:      status,
			TotalAmount: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		for i, line := range in.Items {
			field := fmt.Sprintf("items[%d]", i)
			p, err := reserveProduct(ctx, r, field, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			//スナップショット
			item, err := r.OrderItems().Create(ctx, model.OrderItem{
				OrderID:   o.ID,
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			})
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			items = append(items, item)
			total = total.Add(item.Subtotal())
		}

		if len(items) > 0 {
			if err := r.Orders().UpdateTotal(ctx, o.ID, total); err != nil {
				return fmt.Errorf("update order total: %w", err)
			}
		}

		o.TotalAmount = total
		o.Items = items
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 更新はclient/status/日付のみ。CANCELEDへの変更で在庫を戻す
func (u *OrderUsecase) Update(ctx context.Context, id int64, in OrderRequest) error {
	if err := validateRequest(in); err != nil {
		return err
	}
	if len(in.Items) > 0 {
		return NewValidationError("items", "items cannot be changed on an existing order; use /api/orderitem")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := findOrder(ctx, r.Orders(), id)
		if err != nil {
			return err
		}
		if err := checkClient(ctx, r.Clients(), in.ClientID); err != nil {
			return err
		}

		newStatus := o.Status
		if in.Status != "" {
			newStatus = model.OrderStatus(in.Status)
		}

		if newStatus != o.Status {
			// 終端ガード
			switch o.Status {
			case model.OrderStatusCanceled:
				return NewValidationError("status", "cannot change canceled order")
			case model.OrderStatusShipped:
				return NewValidationError("status", "cannot change shipped order")
			}

			// 同時更新でも在庫の戻しは一度だけ
			changed, err := r.Orders().ChangeStatus(ctx, o.ID, o.Status, newStatus)
			if err != nil {
				return fmt.Errorf("change status of order %d: %w", id, err)
			}
			if !changed {
				return NewValidationError("status", fmt.Sprintf("order %d is no longer %s", id, o.Status))
			}

			if newStatus == model.OrderStatusCanceled {
				if err := restoreStock(ctx, r, o.ID); err != nil {
					return err
				}
			}
		}

		oldStatus := o.Status
		o.ClientID = in.ClientID
		o.Status = newStatus
		if in.OrderDate != nil {
			o.OrderDate = *in.OrderDate
		}

		err = r.Orders().Update(ctx, o)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError(entityOrder, id)
		}
		if err != nil {
			return fmt.Errorf("update order %d: %w", id, err)
		}

		if newStatus == oldStatus {
			return nil
		}
		return u.audit(ctx, r, model.AuditActionUpdateOrderStatus, id,
			orderSnapshot{Status: oldStatus}, orderSnapshot{Status: newStatus})
	})
}

// 注文と明細を論理削除し、在庫を戻す（キャンセル済みは戻し済み）
func (u *OrderUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := findOrder(ctx, r.Orders(), id)
		if err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, id)
		if err != nil {
			return fmt.Errorf("list items of order %d: %w", id, err)
		}
		for _, it := range items {
			if err := r.OrderItems().SoftDelete(ctx, it.ID); err != nil {
				return fmt.Errorf("delete order item %d: %w", it.ID, err)
			}
			if o.Status == model.OrderStatusCanceled {
				continue
			}
			if err := increaseStock(ctx, r, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		err = r.Orders().SoftDelete(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError(entityOrder, id)
		}
		if err != nil {
			return fmt.Errorf("delete order %d: %w", id, err)
		}

		return u.audit(ctx, r, model.AuditActionDeleteOrder, id,
			orderSnapshot{Status: o.Status, TotalAmount: o.TotalAmount.StringFixed(2)}, nil)
	})
}

// 監査ログに残す注文の状態
type orderSnapshot struct {
	Status      model.OrderStatus `json:"status"`
	TotalAmount string            `json:"total_amount,omitempty"`
}

// 監査ログ（同じトランザクション内で書く）
func (u *OrderUsecase) audit(ctx context.Context, r repo.TxRepos, action model.AuditAction, orderID int64, before, after interface{}) error {
	beforeJSON, err := snapshotJSON(before)
	if err != nil {
		return err
	}
	afterJSON, err := snapshotJSON(after)
	if err != nil {
		return err
	}

	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    u.now(),
	}); err != nil {
		return fmt.Errorf("write audit log for order %d: %w", orderID, err)
	}
	return nil
}

func snapshotJSON(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal audit snapshot: %w", err)
	}
	return string(b), nil
}

func findOrder(ctx context.Context, orders repo.OrderRepository, id int64) (model.Order, error) {
	o, err := orders.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewNotFoundError(entityOrder, id)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order %d: %w", id, err)
	}
	return o, nil
}

func checkClient(ctx context.Context, clients repo.ClientRepository, clientID int64) error {
	_, err := clients.FindByID(ctx, clientID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewValidationError("client_id", fmt.Sprintf("client %d not found", clientID))
	}
	if err != nil {
		return fmt.Errorf("find client %d: %w", clientID, err)
	}
	return nil
}

// reserveProduct は商品の存在を確認して在庫を減らす。field は検証エラーの接頭辞。
func reserveProduct(ctx context.Context, r repo.TxRepos, field string, productID, qty int64) (model.Product, error) {
	prefix := ""
	if field != "" {
		prefix = field + "."
	}

	p, err := r.Products().FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewValidationError(prefix+"product_id", fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product %d: %w", productID, err)
	}

	//在庫減算（足りないなら false）
	ok, err := r.Inventory().DecreaseStockIfEnough(ctx, productID, qty)
	if err != nil {
		return model.Product{}, fmt.Errorf("decrease stock of product %d: %w", productID, err)
	}
	if !ok {
		return model.Product{}, NewValidationError(prefix+"quantity", fmt.Sprintf("insufficient stock for product %d", productID))
	}
	return p, nil
}

func increaseStock(ctx context.Context, r repo.TxRepos, productID, qty int64) error {
	err := r.Inventory().IncreaseStock(ctx, productID, qty)
	// 商品行が物理的に無い場合は戻し先がないので無視
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("increase stock of product %d: %w", productID, err)
	}
	return nil
}

func restoreStock(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("list items of order %d: %w", orderID, err)
	}
	for _, it := range items {
		if err := increaseStock(ctx, r, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// 明細から合計を再計算して保存
func recalcTotal(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("list items of order %d: %w", orderID, err)
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	if err := r.Orders().UpdateTotal(ctx, orderID, total); err != nil {
		return fmt.Errorf("update total of order %d: %w", orderID, err)
	}
	return nil
}
