package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Nivaldeir/erp-easy-remote/internal/caching"
	"github.com/Nivaldeir/erp-easy-remote/internal/config"
	"github.com/Nivaldeir/erp-easy-remote/internal/handlers"
	"github.com/Nivaldeir/erp-easy-remote/internal/importer"
	"github.com/Nivaldeir/erp-easy-remote/internal/jobs"
	"github.com/Nivaldeir/erp-easy-remote/internal/middleware"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
	"github.com/Nivaldeir/erp-easy-remote/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object store for archiving raw import files.
	storageSvc, err := services.NewMinioStorageService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background(), cfg.MinioBucket); err != nil {
		log.Printf("WARN: Could not ensure import bucket %s: %v", cfg.MinioBucket, err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	workspaceRepo := repositories.NewWorkspaceRepository(pool)
	workRepo := repositories.NewWorkRepository(pool)
	equipmentRepo := repositories.NewEquipmentRepository(pool)
	contractRepo := repositories.NewContractRepository(pool)
	payableRepo := repositories.NewAccountPayableRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.JWTSecret, cfg.JWKSURL)
	workspaceSvc := services.NewWorkspaceService(workspaceRepo)
	workSvc := services.NewWorkService(workRepo)
	equipmentSvc := services.NewEquipmentService(equipmentRepo)
	contractSvc := services.NewContractService(contractRepo, cacheSvc)
	payableSvc := services.NewAccountsPayableService(payableRepo, cacheSvc)
	importSvc := services.NewImportService(importer.New(payableRepo), storageSvc, cacheSvc, cfg.MinioBucket)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	workspaceHandlers := handlers.NewWorkspaceHandlers(workspaceSvc)
	workHandlers := handlers.NewWorkHandlers(workSvc, workspaceSvc)
	equipmentHandlers := handlers.NewEquipmentHandlers(equipmentSvc, workspaceSvc)
	contractHandlers := handlers.NewContractHandlers(contractSvc, workspaceSvc)
	payableHandlers := handlers.NewAccountsPayableHandlers(payableSvc, workspaceSvc)
	importHandlers := handlers.NewImportHandlers(importSvc, workspaceSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler := jobs.NewScheduler(payableRepo, payableSvc, workspaceRepo)
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc))

	protected.GET("/me", authHandlers.Me)

	// Workspace routes
	protected.GET("/workspaces", workspaceHandlers.ListWorkspaces)
	protected.POST("/workspaces", workspaceHandlers.CreateWorkspace)
	protected.GET("/workspaces/:id", workspaceHandlers.GetWorkspace)
	protected.PUT("/workspaces/:id", workspaceHandlers.UpdateWorkspace)
	protected.POST("/workspaces/:id/members", workspaceHandlers.AddMember)

	// Work routes
	protected.GET("/works", workHandlers.ListWorks)
	protected.POST("/works", workHandlers.CreateWork)
	protected.GET("/works/:id", workHandlers.GetWork)

	// Equipment routes
	protected.GET("/equipment", equipmentHandlers.ListEquipment)
	protected.POST("/equipment", equipmentHandlers.CreateEquipment)
	protected.GET("/equipment/:id", equipmentHandlers.GetEquipment)
	protected.PUT("/equipment/:id", equipmentHandlers.UpdateEquipment)
	protected.DELETE("/equipment/:id", equipmentHandlers.DeleteEquipment)

	// Contract routes
	protected.GET("/contracts", contractHandlers.ListContracts)
	protected.POST("/contracts", contractHandlers.CreateContract)
	protected.GET("/contracts/summary", contractHandlers.GetContractSummary)
	protected.GET("/contracts/:id", contractHandlers.GetContract)
	protected.PUT("/contracts/:id", contractHandlers.UpdateContract)
	protected.DELETE("/contracts/:id", contractHandlers.DeleteContract)

	// Accounts payable routes
	protected.GET("/accounts-payable", payableHandlers.ListPayables)
	protected.POST("/accounts-payable", payableHandlers.CreatePayable)
	protected.GET("/accounts-payable/summary", payableHandlers.GetPayableSummary)
	protected.POST("/accounts-payable/import", importHandlers.ImportCSV)
	protected.GET("/accounts-payable/:id", payableHandlers.GetPayable)
	protected.PUT("/accounts-payable/:id", payableHandlers.UpdatePayable)
	protected.DELETE("/accounts-payable/:id", payableHandlers.DeletePayable)
	protected.POST("/accounts-payable/:id/pay", payableHandlers.MarkPaid)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := e.Start(addr); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
