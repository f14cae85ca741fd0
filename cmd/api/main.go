package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WorkhubHQ/workhub-backend/api/routes"
	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/handlers"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	mongorepo "github.com/WorkhubHQ/workhub-backend/internal/repositories/mongodb"
	"github.com/WorkhubHQ/workhub-backend/internal/services"
	mongodb "github.com/WorkhubHQ/workhub-backend/pkg/mongodb"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env first so viper's AutomaticEnv picks the values up
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.GetEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	ledgerRepoImpl := mongorepo.NewPointsLedgerRepository(db)
	if err := ledgerRepoImpl.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal("Failed to ensure ledger indexes", zap.Error(err))
	}
	var ledgerRepo repositories.PointsLedgerRepository = ledgerRepoImpl
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Initialize services
	pointsService := services.NewPointsService(ledgerRepo, cfg.Points, logger)
	authService := services.NewAuthService(adminRepo, cfg)

	// Initialize handlers
	pointsHandler := handlers.NewPointsHandler(pointsService)
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT.ExpiresIn)

	// Setup router
	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:   authHandler,
		PointsHandler: pointsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Info("Server starting", zap.String("port", cfg.Server.Port))

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
