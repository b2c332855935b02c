package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/authd/internal/token"
	"github.com/ErlanBelekov/authd/internal/transport/http/handler"
	"github.com/ErlanBelekov/authd/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	Logger      *slog.Logger
	AuthHandler *handler.AuthHandler
	Tokens      *token.Manager
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	// Request bodies carry passwords and must never reach the access log.
	r.Use(sloggin.NewWithConfig(cfg.Logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestBody:  false,
	}))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/login", cfg.AuthHandler.Login)
	auth.POST("/login/access-token", cfg.AuthHandler.Refresh)
	auth.POST("/register", cfg.AuthHandler.Register)

	// Protected
	auth.GET("/me", middleware.Auth(cfg.Tokens), cfg.AuthHandler.Me)

	return r
}
