package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TAHAKARAHAN/sockproduction/internal/config"
	"github.com/TAHAKARAHAN/sockproduction/internal/middleware"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/handler"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting sock production service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.ProductionLot{},
		&entity.Sample{},
		&entity.ProductSpec{},
		&entity.OperationLog{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// jsonb_path_exists lookups over variant code bindings need a GIN index
	// once lot counts grow; AutoMigrate cannot express it.
	migrationSQL := []string{
		"CREATE INDEX IF NOT EXISTS idx_production_lots_details ON production_lots USING GIN (details)",
		"CREATE INDEX IF NOT EXISTS idx_production_lots_durum ON production_lots(durum)",
		"CREATE INDEX IF NOT EXISTS idx_operation_logs_entity ON operation_logs(entity_type, entity_id)",
	}
	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration SQL warning (may already exist)", zap.String("sql", sql), zap.Error(err))
		}
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis)

	minioClient, err := initMinIO(cfg.MinIO)
	if err != nil {
		zapLogger.Warn("MinIO unavailable, uploads fall back to local disk", zap.Error(err))
		minioClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, zapLogger)
	handlers := handler.NewHandlers(services, minioClient, cfg.MinIO.Bucket)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinIO(cfg config.MinIOConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// Uploaded photos when running without MinIO
	r.Static("/uploads", "./uploads")

	v1 := r.Group("/api/v1")

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		lots := authorized.Group("/lots")
		{
			lots.GET("", h.Lot.List)
			lots.POST("", h.Lot.Create)
			lots.GET("/:id", h.Lot.Get)
			lots.PUT("/:id", h.Lot.Update)
			lots.DELETE("/:id", h.Lot.Delete)
			lots.GET("/:id/history", h.Lot.History)
			lots.PUT("/:id/stage", h.Lot.UpdateStage)
			lots.POST("/:id/scan", h.Scan.Scan)
			lots.POST("/:id/scan-sessions", h.Scan.OpenSession)
		}

		sessions := authorized.Group("/scan-sessions")
		{
			sessions.POST("/:sid/decode", h.Scan.Decode)
			sessions.POST("/:sid/resume", h.Scan.ResumeSession)
			sessions.DELETE("/:sid", h.Scan.CloseSession)
		}

		samples := authorized.Group("/samples")
		{
			samples.GET("", h.Sample.List)
			samples.POST("", h.Sample.Create)
			samples.GET("/:id", h.Sample.Get)
			samples.PUT("/:id", h.Sample.Update)
			samples.DELETE("/:id", h.Sample.Delete)
		}

		products := authorized.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		reports := authorized.Group("/reports")
		{
			reports.GET("/dashboard", h.Report.Dashboard)
			reports.GET("/lots/export", h.Report.ExportLots)
		}

		authorized.POST("/upload", h.Upload.Upload)
	}
}
