package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	"github.com/Yogesharu2003/BalajiDairy/internal/handler"
	"github.com/Yogesharu2003/BalajiDairy/internal/infra/db"
	infraRepo "github.com/Yogesharu2003/BalajiDairy/internal/infra/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/mail"
	"github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/session"
	"github.com/Yogesharu2003/BalajiDairy/internal/storage"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	gormDB, err := db.Connect()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.PasswordResetCode{},
		&model.RefreshToken{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		slog.Error("auto migrate failed", "err", err)
		os.Exit(1)
	}

	// repositories (GORM)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	resetRepo := infraRepo.NewResetCodeGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	if err := seedAdmin(userRepo); err != nil {
		slog.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// shared infrastructure
	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir init failed", "err", err)
		os.Exit(1)
	}
	carts := session.NewCartStore(cfg.SessionSecret, cfg.IsProd())
	mailer := mail.NewSMTPMailer(cfg)

	// usecases
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, resetRepo, mailer)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, auditRepo)
	statsUC := usecase.NewStatsUsecase(statsRepo, orderRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request", "method", v.Method, "uri", v.URI, "status", v.Status, "err", v.Error)
			} else {
				slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			}
			return nil
		},
	}))

	e.Static("/uploads", images.Dir())

	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC, carts).RegisterRoutes(e)
	handler.NewOrderHandler(orderUC, carts).RegisterRoutes(e, cfg, userRepo)
	handler.NewAuthHandler(authUC, cfg).RegisterRoutes(e)
	handler.NewProfileHandler(authUC, images).RegisterRoutes(e, cfg, userRepo)
	handler.NewDashboardHandler(orderUC, statsUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminOrderHandler(adminOrderUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminStatsHandler(statsUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminProductHandler(productUC, images).RegisterRoutes(e, cfg, userRepo)

	slog.Info("starting", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// seedAdmin creates the bootstrap admin account on an empty install. The
// credentials are for first login only and should be changed immediately.
func seedAdmin(users repository.UserRepository) error {
	ctx := context.Background()

	exists, err := users.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Email:        "admin@balajidairy.local",
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("seeded default admin account", "username", "admin")
	return nil
}
