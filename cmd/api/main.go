package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/internal/config"
	"github.com/cardinal-wishlist/wishlist-backend/internal/database"
	"github.com/cardinal-wishlist/wishlist-backend/internal/handler"
	"github.com/cardinal-wishlist/wishlist-backend/internal/middleware"
	"github.com/cardinal-wishlist/wishlist-backend/internal/migration"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/cardinal-wishlist/wishlist-backend/internal/routes"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	pkgredis "github.com/cardinal-wishlist/wishlist-backend/pkg/redis"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/scraper"
	pkgstorage "github.com/cardinal-wishlist/wishlist-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Wishlist API
// @version         2.0
// @description     Wishlists, item claims and friends
//
// @host            localhost:8000
// @BasePath        /api/v2
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath(env string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	dotenvFiles := config.LoadDotEnv(env)

	// 로거 초기화
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// DB 연결 (필수)
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis 연결 (선택, rate limit 용도)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without rate limiting)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}

	// S3-compatible storage (선택)
	var fileStorage service.FileStorage
	if cfg.Storage.Enabled {
		s3Client, err := pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.Warn("S3 storage init failed: %v (uploads disabled)", err)
		} else {
			fileStorage = s3Client
			pkglogger.Info("Connected to S3 storage")
		}
	}

	// JWT Manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	productScraper := scraper.New(time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second, cfg.Scraper.UserAgent)

	if err := handler.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Gin 라우터 생성
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOriginList(),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", healthHandler(db))

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	itemRepo := repository.NewItemRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	savedRepo := repository.NewSavedWishlistRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, fileStorage)
	userService := service.NewUserService(userRepo, fileStorage)
	wishlistService := service.NewWishlistService(wishlistRepo, itemRepo, userRepo)
	itemService := service.NewItemService(itemRepo, wishlistRepo, userRepo, fileStorage, productScraper)
	claimService := service.NewClaimService(itemRepo, userRepo)
	relService := service.NewRelationshipService(relRepo, userRepo, wishlistRepo)
	savedService := service.NewSavedWishlistService(savedRepo, wishlistRepo)

	routes.Setup(router, &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Wishlist:      handler.NewWishlistHandler(wishlistService, itemService),
		Item:          handler.NewItemHandler(itemService),
		Claim:         handler.NewClaimHandler(claimService),
		Friend:        handler.NewFriendHandler(relService),
		SavedWishlist: handler.NewSavedWishlistHandler(savedService),
	}, jwtManager, routes.Options{
		RedisClient:       redisClient,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		MaxUploadBytes:    int64(cfg.Storage.MaxUploadMB) << 20,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reportDBStats(ctx, db)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "wishlist-backend",
			"time":    time.Now().Unix(),
		})
	}
}

func reportDBStats(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			middleware.SetDBConnectionsOpen(sqlDB.Stats().OpenConnections)
		}
	}
}
