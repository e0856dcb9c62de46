package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/internal/api"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common/security"
	"newsdesk/internal/domain/repository"
	"newsdesk/internal/platform/config"
	"newsdesk/internal/platform/database"
	"newsdesk/internal/platform/tokenstore"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Structured logging
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// 3. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 4. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 5. Initialize Redis (refresh-token store)
	tokenstore.ConnectRedis()
	defer tokenstore.CloseRedis()

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	categoryRepo := repository.NewPgCategoryRepository(database.DB)
	articleRepo := repository.NewPgArticleRepository(database.DB)

	// 7. Initialize Services
	refreshStore := tokenstore.NewRedisRefreshStore(tokenstore.RDB)
	authService := service.NewAuthService(userRepo, refreshStore)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	articleService := service.NewArticleService(articleRepo, categoryRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(logger, authService, userService, categoryService, articleService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", zap.String("port", config.AppConfig.APIPort), zap.Error(err))
		}
	}()
	logger.Info("Server started successfully.")

	<-stop // Wait for interrupt signal

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully.")
}
