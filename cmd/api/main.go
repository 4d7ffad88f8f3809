package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pmartins-dev/roster-api/internal/adapter/handler"
	"github.com/pmartins-dev/roster-api/internal/adapter/repository/postgres"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/auth"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/cache"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/config"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/database"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/middleware"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/observability"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/server"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/storage"
	"github.com/pmartins-dev/roster-api/internal/usecase/avatar"
	"github.com/pmartins-dev/roster-api/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(pool)

	// Infrastructure services
	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)
	passwordHasher := auth.NewPasswordHasher(12)

	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}
	avatarProcessor := storage.NewAvatarProcessor()

	// Use cases
	userSvc := user.NewService(userRepo, passwordHasher)
	avatarSvc := avatar.NewService(userRepo, s3Storage, avatarProcessor)

	// Handlers
	userHandler := handler.NewUserHandler(userSvc)
	avatarHandler := handler.NewAvatarHandler(avatarSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		UserHandler:    userHandler,
		AvatarHandler:  avatarHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
