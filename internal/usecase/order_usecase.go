package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/session"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo}
}

type OrderOutput struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Items     []model.LineItem `json:"items"`
	Summary   string           `json:"summary"`
	Total     decimal.Decimal  `json:"total"`
	Address   string           `json:"address"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Placed    string           `json:"placed"`
}

// PlaceOrder turns the session cart into a Pending order. The whole thing
// runs in one transaction: if any line lacks stock the order does not exist
// and no stock moved.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, address string, cart session.Cart) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(address) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery address is required")
	}
	entries := cart.Entries()
	if len(entries) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make(model.OrderItems, 0, len(entries))
		total := decimal.Zero

		for _, e := range entries {
			p, err := r.Products().FindByID(ctx, e.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				// product removed since it was added to the cart
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if e.Qty > p.Stock {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("not enough stock for %s", p.Name))
			}

			// guarded decrement: a concurrent checkout may have taken the
			// stock between the read above and here
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, e.ProductID, e.Qty)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("not enough stock for %s", p.Name))
			}

			items = append(items, model.LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Qty:       e.Qty,
				Price:     p.Price,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(e.Qty)))
		}

		order := model.Order{
			UserID:  userID,
			Items:   items,
			Total:   total,
			Address: strings.TrimSpace(address),
			Status:  model.OrderStatusPending,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		order.CreatedAt = time.Now()
		out = toOrderOutput(order)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, f repo.OrderDateFilter) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID, f)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// someone else's order looks like it does not exist
	if o.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return toOrderOutput(o), nil
}

// Cancel restores the snapshot quantities and deletes the order row. Only
// the owner may cancel, and only while the order is still Pending.
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "only pending orders can be cancelled")
		}

		for _, it := range o.Items {
			if it.ProductID <= 0 || it.Qty <= 0 {
				continue
			}
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Qty); err != nil {
				// product row gone: nothing to restore into
				if errors.Is(err, repo.ErrNotFound) {
					continue
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order) OrderOutput {
	items := o.Items
	if items == nil {
		items = model.OrderItems{}
	}
	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Summary:   o.Items.Summary(),
		Total:     o.Total,
		Address:   o.Address,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Placed:    FormatIST(o.CreatedAt),
	}
}
