package repository

import (
	"context"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"

	"github.com/shopspring/decimal"
)

// OrderDateFilter is an optional inclusive calendar-day range, both ends in
// "2006-01-02" form. Empty strings mean unbounded.
type OrderDateFilter struct {
	StartDate string
	EndDate   string
}

// OrderWithUser carries the owning user's name alongside the order for the
// admin views.
type OrderWithUser struct {
	model.Order `gorm:"embedded"`
	Username    string `json:"username"`
}

// OrderTotal is the slim projection the sales series is built from.
type OrderTotal struct {
	Total     decimal.Decimal
	CreatedAt time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID int64, f OrderDateFilter) ([]model.Order, error)
	// ListWithUser returns all orders joined with usernames, newest first.
	ListWithUser(ctx context.Context, f OrderDateFilter) ([]OrderWithUser, error)
	// ListTotalsAsc returns (total, created_at) pairs oldest first.
	ListTotalsAsc(ctx context.Context, f OrderDateFilter) ([]OrderTotal, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}
