package repository

import (
	"context"
	"errors"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"

	"gorm.io/gorm"
)

type resetCodeGormRepository struct {
	db *gorm.DB
}

func NewResetCodeGormRepository(db *gorm.DB) repo.PasswordResetCodeRepository {
	return &resetCodeGormRepository{db: db}
}

func (r *resetCodeGormRepository) Create(ctx context.Context, code *model.PasswordResetCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return err
	}
	return nil
}

func (r *resetCodeGormRepository) FindByUserAndCode(ctx context.Context, userID int64, code string) (*model.PasswordResetCode, error) {
	var c model.PasswordResetCode

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Order("id desc").
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *resetCodeGormRepository) FindVerifiedByUserID(ctx context.Context, userID int64) (*model.PasswordResetCode, error) {
	var c model.PasswordResetCode

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = ?", userID, true).
		Order("id desc").
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *resetCodeGormRepository) MarkVerified(ctx context.Context, codeID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.PasswordResetCode{}).
		Where("id = ?", codeID).
		Update("verified", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *resetCodeGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetCode{}).Error; err != nil {
		return err
	}
	return nil
}
