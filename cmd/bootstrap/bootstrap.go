package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prescription-ai-service/config"
	deliveryHttp "prescription-ai-service/internal/delivery/http"
	"prescription-ai-service/internal/delivery/http/handler"
	"prescription-ai-service/internal/delivery/http/middleware"
	"prescription-ai-service/internal/domain/entity"
	"prescription-ai-service/internal/infrastructure/cache"
	"prescription-ai-service/internal/infrastructure/database"
	"prescription-ai-service/internal/infrastructure/inference"
	"prescription-ai-service/internal/repository"
	"prescription-ai-service/internal/service"
	"prescription-ai-service/internal/usecase"
	"prescription-ai-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration; a missing HF_API_KEY fails here, before serving
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewMySQLConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := db.AutoMigrate(&entity.Patient{}, &entity.Prescription{}, &entity.AuditLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Redis is optional: the consult record cache is skipped when no host
	// is configured.
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	} else {
		logrus.Info("REDIS_HOST not set, consult record cache disabled")
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, app.RedisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Inference client; fails fast on bad configuration
	generator, err := inference.NewClient(cfg.HF)
	if err != nil {
		return nil, fmt.Errorf("failed to build inference client: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	var recordCache usecase.RecordCache
	if redisClient != nil {
		recordCache = cache.NewRecordCache(redisClient)
	}

	// Initialize usecases
	intakeUsecase := usecase.NewIntakeUsecase(db, log, patientRepo, prescriptionRepo, generator, auditService, cfg.Intake.Atomic)
	consultUsecase := usecase.NewConsultUsecase(db, log, patientRepo, generator, recordCache, auditService)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	intakeHandler := handler.NewIntakeHandler(intakeUsecase, customValidator)
	consultHandler := handler.NewConsultHandler(consultUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(healthHandler, intakeHandler, consultHandler, corsMiddleware, requestIDMiddleware, cfg.App.StaticDir)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
