package repository

import (
	"context"
	"errors"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	MarkUsed(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
	// DeleteAllByUserID is the replay/compromise response: drop every session
	// the user has.
	DeleteAllByUserID(ctx context.Context, userID int64) error
	DeleteByID(ctx context.Context, id string) error
}
