package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/hash"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	loggingmw "storefront/internal/middleware/logging"
	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/search"
	"storefront/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := seedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = &search.Index{ES: es, Name: cfg.ESIndex}
	}

	gormRepo := &repo.GormRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret},
			Producer: producer,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: gormRepo, Index: index},
			Index:    index,
			Producer: producer,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: gormRepo},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Repo: gormRepo},
			Producer: producer,
		},
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// seedAdmin creates the default admin account on first boot.
func seedAdmin(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "admin",
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("default admin created", "email", email)
	return nil
}
