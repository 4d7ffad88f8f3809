package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/pmartins-dev/roster-api/internal/adapter/handler"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	userHandler    *handler.UserHandler
	avatarHandler  *handler.AvatarHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         *zap.Logger
}

type RouterConfig struct {
	UserHandler    *handler.UserHandler
	AvatarHandler  *handler.AvatarHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		userHandler:    cfg.UserHandler,
		avatarHandler:  cfg.AvatarHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
	if r.rateLimiter != nil {
		r.engine.Use(r.rateLimiter.Limit())
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := r.engine.Group("/users")
	{
		// Registration is open; everything else needs a caller identity.
		users.POST("", r.userHandler.Create)

		protected := users.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("", r.userHandler.List)
			protected.GET("/:id", r.userHandler.Get)
			protected.PUT("/:id", r.userHandler.Update)
			protected.DELETE("/:id", r.userHandler.Delete)

			protected.POST("/:id/avatar", r.avatarHandler.Upload)
			protected.DELETE("/:id/avatar", r.avatarHandler.Remove)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
