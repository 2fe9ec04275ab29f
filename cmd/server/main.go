package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Donny1114/Device-Management-System/internal/config"
	"github.com/Donny1114/Device-Management-System/internal/handler"
	"github.com/Donny1114/Device-Management-System/internal/middleware"
	"github.com/Donny1114/Device-Management-System/internal/service"
	"github.com/Donny1114/Device-Management-System/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET_KEY not set in environment")
	}

	// --- Database Connection ---
	store, err := config.ConnectDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.Auth.JWTSecret, cfg.Auth.JWTExpirationHours)
	hasher, err := utils.NewPasswordHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		logger.Fatal("Invalid password scheme", zap.Error(err))
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(store.Users, hasher, jwtUtil, logger)
	deviceService := service.NewDeviceService(store.Devices, logger)
	reportService := service.NewReportService(store.Devices, logger)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, logger)
	deviceHandler := handler.NewDeviceHandler(deviceService, reportService, logger)
	healthHandler := handler.NewHealthHandler(store, logger)

	// --- Setup Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
	)

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup)
	deviceHandler.RegisterDeviceRoutes(apiGroup, middleware.JWTAuthMiddleware(jwtUtil))
	router.GET("/health", healthHandler.Health)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
