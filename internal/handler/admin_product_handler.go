package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/middleware"
	"github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/storage"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminProductHandler struct {
	uc     *usecase.ProductUsecase
	images *storage.ImageStore
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase, images *storage.ImageStore) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, images: images}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// productInputFromForm reads the multipart form. The image may arrive as an
// uploaded file or as an external URL in image_url; the file wins when both
// are present.
func (h *AdminProductHandler) productInputFromForm(c echo.Context) (usecase.ProductInput, error) {
	stock := int64(0)
	if v := c.FormValue("stock"); v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid stock")
		}
		stock = s
	}

	in := usecase.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       stock,
		Image:       c.FormValue("image_url"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// no file attached, image_url (possibly empty) stands
		return in, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer file.Close()

	filename, err := h.images.Save(file, fileHeader)
	if err != nil {
		return usecase.ProductInput{}, err
	}
	in.Image = filename
	return in, nil
}

func (h *AdminProductHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in, err := h.productInputFromForm(c)
	if err != nil {
		return writeImageOrError(c, err)
	}

	out, err := h.uc.AdminCreate(c.Request().Context(), adminID, in)
	if err != nil {
		_ = h.images.Remove(in.Image)
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := h.productInputFromForm(c)
	if err != nil {
		return writeImageOrError(c, err)
	}

	out, replaced, err := h.uc.AdminUpdate(c.Request().Context(), adminID, id, in)
	if err != nil {
		_ = h.images.Remove(in.Image)
		return writeError(c, err)
	}

	if err := h.images.Remove(replaced); err != nil {
		slog.Warn("removing replaced product image failed", "file", replaced, "err", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) remove(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	image, err := h.uc.AdminDelete(c.Request().Context(), adminID, id)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.images.Remove(image); err != nil {
		slog.Warn("removing product image failed", "file", image, "err", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

// image-store failures get their own messages; everything else goes through
// writeError.
func writeImageOrError(c echo.Context, err error) error {
	if _, ok := usecase.AsHTTPError(err); ok {
		return writeError(c, err)
	}
	return writeImageError(c, err)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}
	return id, true
}
