// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-blog-api/config"
	"go-blog-api/db"
	"go-blog-api/handler"
	"go-blog-api/logger"
	"go-blog-api/repository"
	"go-blog-api/router"
	"go-blog-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires all layers together. This is the single place where
// repositories, services and handlers are composed; Run and NewTestApp
// both go through it so tests exercise the production wiring.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	tokenService := service.NewTokenService(service.TokenConfig{
		SecretKey:            config.AppConfig.JWT.SecretKey,
		Algorithm:            config.AppConfig.JWT.Algorithm,
		AccessExpireMinutes:  config.AppConfig.JWT.AccessExpireMinutes,
		RefreshExpireMinutes: config.AppConfig.JWT.RefreshExpireMinutes,
	})

	authorRepo := repository.NewAuthorRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	postRepo := repository.NewPostRepository(database)
	tagRepo := repository.NewTagRepository(database)

	authService := service.NewAuthService(authorRepo, tokenService)
	authorService := service.NewAuthorService(authorRepo, authService)
	profileService := service.NewProfileService(profileRepo, config.AppConfig.Media.Dir)
	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(postRepo, categoryRepo, redisClient, config.AppConfig.Media.Dir)

	authHandler := handler.NewAuthHandler(authService)
	authorHandler := handler.NewAuthorHandler(authorService, profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	postHandler := handler.NewPostHandler(postService)
	tagHandler := handler.NewTagHandler(tagRepo)

	return router.NewRouter(
		authService,
		authHandler,
		authorHandler,
		categoryHandler,
		postHandler,
		tagHandler,
		config.AppConfig.Media.Dir,
	)
}

// TestApp bundles the wired router with its database handle for
// integration tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

// NewTestApp builds the full application against the given test
// database and redis client. Configuration must already be loaded.
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, redisClient),
	}
}
