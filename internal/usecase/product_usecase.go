package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type ProductInput struct {
	Name        string
	Description string
	Price       string
	Stock       int64
	Image       string
}

func (in ProductInput) parse() (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "product name is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	return model.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Stock:       in.Stock,
		Image:       strings.TrimSpace(in.Image),
	}, nil
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, actorAdminUserID int64, in ProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := in.parse()
	if err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionCreateProduct, created.ID, model.Product{}, created)
	return created, nil
}

// AdminUpdate applies the edit and returns the replaced image filename so
// the handler can clean up the stored file. Stock edits leave an
// InventoryAdjustment row behind.
func (u *ProductUsecase) AdminUpdate(ctx context.Context, actorAdminUserID int64, id int64, in ProductInput) (model.Product, string, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return model.Product{}, "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	before, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, "", NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := in.parse()
	if err != nil {
		return model.Product{}, "", err
	}
	p.ID = id
	if p.Image == "" {
		// no replacement uploaded, keep the current image
		p.Image = before.Image
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, "", NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.Stock != before.Stock {
		adj := model.InventoryAdjustment{
			ProductID:   id,
			AdminUserID: actorAdminUserID,
			Delta:       p.Stock - before.Stock,
			Reason:      "admin product edit",
			CreatedAt:   time.Now(),
		}
		if err := u.inventoryRepo.CreateAdjustment(ctx, adj); err != nil {
			return model.Product{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateProduct, id, before, p)

	replaced := ""
	if before.Image != p.Image {
		replaced = before.Image
	}
	return p, replaced, nil
}

// AdminDelete removes the product and returns its image filename for
// cleanup.
func (u *ProductUsecase) AdminDelete(ctx context.Context, actorAdminUserID int64, id int64) (string, error) {
	if actorAdminUserID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	before, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", NewHTTPError(http.StatusNotFound, "product not found")
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionDeleteProduct, id, before, model.Product{})
	return before.Image, nil
}

// audit is best-effort: the product mutation has already committed.
func (u *ProductUsecase) audit(ctx context.Context, actorID int64, action model.AuditAction, resourceID int64, before model.Product, after model.Product) {
	entry := &model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   resourceID,
		BeforeJSON:   productJSON(before),
		AfterJSON:    productJSON(after),
		CreatedAt:    time.Now(),
	}
	_ = u.auditRepo.Create(ctx, entry)
}

func productJSON(p model.Product) string {
	if p.ID == 0 && p.Name == "" {
		return ""
	}
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}
