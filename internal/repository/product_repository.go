package repository

import (
	"context"
	"errors"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ProductRepository covers catalog reads and the admin CRUD.
type ProductRepository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
