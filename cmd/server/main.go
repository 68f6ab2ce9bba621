package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/blogcraft/blog-backend/internal/api"
	"github.com/blogcraft/blog-backend/internal/config"
	"github.com/blogcraft/blog-backend/internal/middleware"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/blogcraft/blog-backend/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := database.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger.Info("connected to database")

	postStore := store.NewPostStore(pool)
	userStore := store.NewUserStore(pool)

	handler := api.NewHandler(postStore, userStore, pool, cfg.JWTSecret)
	authHandler, err := api.NewAuthHandler(userStore, cfg.JWTSecret)
	if err != nil {
		return err
	}

	router := gin.Default()
	router.Use(
		middleware.RequestID(logger),
		middleware.SecurityHeaders(),
		middleware.HostHeaderValidation(cfg.ExpectedHost),
	)

	handler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	logger.Info("starting server", "port", cfg.BackendPort)
	return router.Run(":" + cfg.BackendPort)
}
