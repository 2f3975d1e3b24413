package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orderRepo: orderRepo, auditRepo: auditRepo}
}

type AdminOrderOutput struct {
	OrderOutput
	Username string `json:"username"`
}

type DayGroup struct {
	Day    string             `json:"day"`
	Orders []AdminOrderOutput `json:"orders"`
}

// ListDaywise returns all orders grouped by their IST calendar day. Days
// appear in encounter order of a newest-first listing, so the most recent
// day comes first.
func (u *AdminOrderUsecase) ListDaywise(ctx context.Context, f repo.OrderDateFilter) ([]DayGroup, error) {
	orders, err := u.orderRepo.ListWithUser(ctx, f)
	if err != nil {
		return []DayGroup{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	groups := []DayGroup{}
	index := map[string]int{}

	for _, o := range orders {
		day := o.CreatedAt.In(istZone).Format("2006-01-02")

		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day, Orders: []AdminOrderOutput{}})
		}
		groups[i].Orders = append(groups[i].Orders, AdminOrderOutput{
			OrderOutput: toOrderOutput(o.Order),
			Username:    o.Username,
		})
	}

	return groups, nil
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// UpdateStatus moves the order to any member of the fixed status set. No
// ordering is enforced between statuses; the change is audit-logged.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in UpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !model.ValidOrderStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status == newStatus {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		entry := &model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    time.Now(),
		}
		if err := u.auditRepo.Create(ctx, entry); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Delete removes the order outright. Unlike the customer cancel this is an
// administrative cleanup and does not put stock back.
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorAdminUserID int64, orderID int64) error {
	if actorAdminUserID <= 0 {
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

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		entry := &model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `","total":"` + o.Total.String() + `"}`,
			AfterJSON:    "",
			CreatedAt:    time.Now(),
		}
		if err := u.auditRepo.Create(ctx, entry); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
