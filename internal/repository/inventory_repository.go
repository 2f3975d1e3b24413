package repository

import (
	"context"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

type InventoryRepository interface {
	// DecreaseStockIfEnough decrements stock only when enough remains.
	// Returns false (and no change) otherwise. This is the write-time guard
	// against two checkouts racing past the pre-check.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// IncreaseStock restores stock, used by order cancellation.
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// CreateAdjustment records a manual stock change.
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
