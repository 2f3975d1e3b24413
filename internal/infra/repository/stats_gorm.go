package repository

import (
	"context"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) repo.StatsRepository {
	return &statsGormRepository{db: db}
}

func (r *statsGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statsGormRepository) OrderCountAndRevenue(ctx context.Context, filter repo.OrderDateFilter) (int64, decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.StartDate != "" {
		q = q.Where("DATE(created_at) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("DATE(created_at) <= ?", filter.EndDate)
	}

	// COALESCE keeps the sum NULL-safe when no orders match.
	var row struct {
		Count   int64           `gorm:"column:count"`
		Revenue decimal.Decimal `gorm:"column:revenue"`
	}
	err := q.Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}

	return row.Count, row.Revenue, nil
}
