package repository

import (
	"context"
	"errors"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrUserDuplicate reports a unique-index hit on username or email.
	ErrUserDuplicate = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByIdentifier resolves a login identifier that may be either the
	// username or the email.
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID int64, avatar string) error
	// IncrementTokenVersion invalidates every outstanding access token.
	IncrementTokenVersion(ctx context.Context, userID int64) error
	AdminExists(ctx context.Context) (bool, error)
}
