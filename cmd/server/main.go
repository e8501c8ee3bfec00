package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/foodgram-backend/config"
	"github.com/ikkim/foodgram-backend/internal/app/controller"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	"github.com/ikkim/foodgram-backend/internal/db"
	"github.com/ikkim/foodgram-backend/internal/middleware"
	"github.com/ikkim/foodgram-backend/internal/router"
	"github.com/ikkim/foodgram-backend/internal/scheduler"
	"github.com/ikkim/foodgram-backend/internal/storage"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"github.com/ikkim/foodgram-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Foodgram Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (also seeds the default tags)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it logout is a no-op and tags are not cached
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without token blacklist and tag cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Image storage
	var images storage.ImageStorage
	switch cfg.Storage.Driver {
	case "s3":
		images = storage.NewS3Storage(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL)
	default:
		images = storage.NewLocalStorage(cfg.Storage.MediaRoot, cfg.Storage.MediaURL)
	}
	logger.Info("Image storage configured", map[string]interface{}{
		"driver": cfg.Storage.Driver,
	})

	// Initialize repositories
	gdb := db.GetDB()
	userRepo := repository.NewUserRepository(gdb)
	recipeRepo := repository.NewRecipeRepository(gdb)
	ingredientRepo := repository.NewIngredientRepository(gdb)
	tagRepo := repository.NewTagRepository(gdb)
	annotationRepo := repository.NewAnnotationRepository(gdb)
	followRepo := repository.NewFollowRepository(gdb)
	orphanRepo := repository.NewOrphanImageRepository(gdb)
	shoppingListRepo := repository.NewShoppingListRepository(gdb)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo, followRepo)
	recipeService := service.NewRecipeService(gdb, recipeRepo, ingredientRepo, tagRepo, followRepo, orphanRepo, images)
	annotationService := service.NewAnnotationService(annotationRepo, recipeRepo)
	followService := service.NewFollowService(followRepo, userRepo, recipeRepo)
	shoppingListService := service.NewShoppingListService(shoppingListRepo)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	mediaService := service.NewMediaService(orphanRepo, images)

	// Migrate may have seeded new tags
	if err := tagService.InvalidateCache(context.Background()); err != nil {
		logger.Warn("Failed to invalidate tag cache on startup", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService, followService)
	recipeController := controller.NewRecipeController(recipeService)
	annotationController := controller.NewAnnotationController(annotationService, shoppingListService)
	catalogController := controller.NewCatalogController(tagService, ingredientService)
	adminController := controller.NewAdminController(mediaService, tagService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		recipeController,
		annotationController,
		catalogController,
		adminController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Orphan image cleanup
	cleanup := scheduler.NewImageCleanupScheduler(mediaService, cfg.Scheduler.ImageCleanupCron)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start image cleanup scheduler", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	cleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
