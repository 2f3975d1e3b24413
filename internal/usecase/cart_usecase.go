package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/session"

	"github.com/shopspring/decimal"
)

type CartUsecase struct {
	productRepo repo.ProductRepository
}

func NewCartUsecase(productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{productRepo: productRepo}
}

type CartLine struct {
	Product  model.Product   `json:"product"`
	Qty      int64           `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines      []CartLine      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int64           `json:"total_items"`
}

// Add validates the product and quantity before the caller merges the line
// into the session cart. The stock check here is advisory: checkout
// re-validates inside the transaction.
func (u *CartUsecase) Add(ctx context.Context, cart session.Cart, productID int64, qty int64) (model.Product, error) {
	if qty < 1 {
		qty = 1
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// the cumulative quantity is what checkout will try to take
	current := cart[strconv.FormatInt(productID, 10)]
	if current+qty > p.Stock {
		return model.Product{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("not enough stock for %s (only %d left)", p.Name, p.Stock))
	}

	cart.Add(productID, qty)
	return p, nil
}

// View resolves the session cart against the live catalog. Entries whose
// product has since been deleted are dropped silently.
func (u *CartUsecase) View(ctx context.Context, cart session.Cart) (CartView, error) {
	view := CartView{
		Lines: []CartLine{},
		Total: decimal.Zero,
	}

	for _, e := range cart.Entries() {
		p, err := u.productRepo.FindByID(ctx, e.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(e.Qty))
		view.Lines = append(view.Lines, CartLine{
			Product:  p,
			Qty:      e.Qty,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
		view.TotalItems += e.Qty
	}

	return view, nil
}
