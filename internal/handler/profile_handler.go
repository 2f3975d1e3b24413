package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/middleware"
	"github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/storage"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	uc     *usecase.AuthUsecase
	images *storage.ImageStore
}

// DI
func NewProfileHandler(uc *usecase.AuthUsecase, images *storage.ImageStore) *ProfileHandler {
	return &ProfileHandler{uc: uc, images: images}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	}

	e.GET("/me", h.me, auth...)
	e.PUT("/me", h.update, auth...)
	e.POST("/me/avatar", h.uploadAvatar, auth...)
	e.DELETE("/me/avatar", h.removeAvatar, auth...)
}

func (h *ProfileHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) uploadAvatar(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "avatar file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read upload"})
	}
	defer file.Close()

	filename, err := h.images.Save(file, fileHeader)
	if err != nil {
		return writeImageError(c, err)
	}

	old, err := h.uc.SetAvatar(c.Request().Context(), userID, filename)
	if err != nil {
		// the DB write lost; do not leave the new file behind
		_ = h.images.Remove(filename)
		return writeError(c, err)
	}

	if err := h.images.Remove(old); err != nil {
		slog.Warn("removing replaced avatar failed", "file", old, "err", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"avatar": filename})
}

func (h *ProfileHandler) removeAvatar(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	old, err := h.uc.SetAvatar(c.Request().Context(), userID, "")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.images.Remove(old); err != nil {
		slog.Warn("removing avatar failed", "file", old, "err", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "avatar removed"})
}

func writeImageError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image exceeds the 2 MB limit"})
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "only png, jpg, jpeg and gif images are allowed"})
	default:
		slog.Error("image store failure", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not store image"})
	}
}
