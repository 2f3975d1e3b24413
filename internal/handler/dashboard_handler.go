package handler

import (
	"net/http"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/middleware"
	"github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Customer-facing order history and totals.
type DashboardHandler struct {
	orders *usecase.OrderUsecase
	stats  *usecase.StatsUsecase
}

// DI
func NewDashboardHandler(orders *usecase.OrderUsecase, stats *usecase.StatsUsecase) *DashboardHandler {
	return &DashboardHandler{orders: orders, stats: stats}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("/orders", h.orderHistory)
	g.GET("/stats", h.userStats)
}

func (h *DashboardHandler) orderHistory(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orders.ListMyOrders(c.Request().Context(), userID, dateFilterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) userStats(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.stats.UserStats(c.Request().Context(), userID, dateFilterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
