package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	// OrderCountAndRevenue aggregates the order count and summed totals inside
	// the filter window. An empty filter means all time.
	OrderCountAndRevenue(ctx context.Context, filter OrderDateFilter) (int64, decimal.Decimal, error)
}
