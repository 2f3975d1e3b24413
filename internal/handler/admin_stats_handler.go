package handler

import (
	"net/http"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/middleware"
	"github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminStatsHandler struct {
	uc *usecase.StatsUsecase
}

// DI
func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{uc: uc}
}

func (h *AdminStatsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/stats", h.stats)
	g.GET("/sales", h.sales)
}

func (h *AdminStatsHandler) stats(c echo.Context) error {
	out, err := h.uc.AdminStats(c.Request().Context(), dateFilterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminStatsHandler) sales(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "day"
	}

	out, err := h.uc.SalesSeries(c.Request().Context(), period, dateFilterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
