package handler

import (
	"net/http"
	"strconv"

	"github.com/Yogesharu2003/BalajiDairy/internal/session"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Cart lives in the cookie session, so no login is required here.
type CartHandler struct {
	uc    *usecase.CartUsecase
	carts *session.CartStore
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, carts *session.CartStore) *CartHandler {
	return &CartHandler{uc: uc, carts: carts}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.view)
	e.POST("/cart/add/:id", h.addForm)
	e.POST("/cart/remove/:id", h.remove)
	e.POST("/api/cart/add", h.addJSON)
}

func (h *CartHandler) view(c echo.Context) error {
	cart := h.carts.Load(c.Request())

	out, err := h.uc.View(c.Request().Context(), cart)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// form variant: quantity arrives as a form field, default 1
func (h *CartHandler) addForm(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	qty := int64(1)
	if v := c.FormValue("quantity"); v != "" {
		q, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
		}
		qty = q
	}

	return h.add(c, productID, qty)
}

type addCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *CartHandler) addJSON(c echo.Context) error {
	var req addCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}
	return h.add(c, req.ProductID, req.Quantity)
}

func (h *CartHandler) add(c echo.Context, productID int64, qty int64) error {
	cart := h.carts.Load(c.Request())

	p, err := h.uc.Add(c.Request().Context(), cart, productID, qty)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.carts.Save(c.Request(), c.Response(), cart); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_name": p.Name,
		"total_items":  cart.Count(),
	})
}

func (h *CartHandler) remove(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	cart := h.carts.Load(c.Request())
	cart.Remove(productID)

	if err := h.carts.Save(c.Request(), c.Response(), cart); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_items": cart.Count(),
	})
}
