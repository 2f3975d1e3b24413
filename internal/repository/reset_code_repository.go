package repository

import (
	"context"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

type PasswordResetCodeRepository interface {
	Create(ctx context.Context, code *model.PasswordResetCode) error
	FindByUserAndCode(ctx context.Context, userID int64, code string) (*model.PasswordResetCode, error)
	// FindVerifiedByUserID returns the user's verified code, if any is still
	// present. Consumed codes are deleted, so none found means no live reset.
	FindVerifiedByUserID(ctx context.Context, userID int64) (*model.PasswordResetCode, error)
	MarkVerified(ctx context.Context, codeID int64) error
	// DeleteAllByUserID enforces the at-most-one-live-code rule on re-request
	// and consumes the code after a successful reset.
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
