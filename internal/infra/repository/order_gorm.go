package repository

import (
	"context"
	"errors"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, f repo.OrderDateFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	q = applyDateFilter(q, f)

	var items []model.Order
	if err := q.Order("id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListWithUser(ctx context.Context, f repo.OrderDateFilter) ([]repo.OrderWithUser, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.*, users.username").
		Joins("JOIN users ON users.id = orders.user_id")
	q = applyDateFilterPrefixed(q, f)

	var items []repo.OrderWithUser
	if err := q.Order("orders.id desc").Find(&items).Error; err != nil {
		return []repo.OrderWithUser{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListTotalsAsc(ctx context.Context, f repo.OrderDateFilter) ([]repo.OrderTotal, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("total, created_at")
	q = applyDateFilter(q, f)

	var items []repo.OrderTotal
	if err := q.Order("created_at asc").Find(&items).Error; err != nil {
		return []repo.OrderTotal{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Date bounds compare on the calendar day, not the timestamp.
func applyDateFilter(q *gorm.DB, f repo.OrderDateFilter) *gorm.DB {
	if f.StartDate != "" {
		q = q.Where("DATE(created_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("DATE(created_at) <= ?", f.EndDate)
	}
	return q
}

func applyDateFilterPrefixed(q *gorm.DB, f repo.OrderDateFilter) *gorm.DB {
	if f.StartDate != "" {
		q = q.Where("DATE(orders.created_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("DATE(orders.created_at) <= ?", f.EndDate)
	}
	return q
}
