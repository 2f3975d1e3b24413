package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

// ValidOrderStatus reports whether s is a member of the fixed status set.
// Admins may move an order to any member; there is no enforced ordering.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`
	// Items is the line-item snapshot frozen at checkout. It never reflects
	// later product mutations.
	Items     OrderItems      `gorm:"type:jsonb" json:"items"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Address   string          `gorm:"type:text" json:"address"`
	Status    OrderStatus     `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
