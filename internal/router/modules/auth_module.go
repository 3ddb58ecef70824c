package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookbuddy/bookbuddy-api/internal/application"
	"github.com/bookbuddy/bookbuddy-api/internal/container"
	handlers "github.com/bookbuddy/bookbuddy-api/internal/interface/http"
	"github.com/bookbuddy/bookbuddy-api/internal/interface/middleware"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
)

// AuthModule wires registration, login and profile routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/profile
type AuthModule struct {
	Handler  *handlers.AuthHandler
	JWT      *helpers.JWTManager
	Sessions *application.SessionManager
	Guard    *application.Guard
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, sessions *application.SessionManager, guard *application.Guard) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Sessions: sessions, Guard: guard}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Sessions, m.Guard))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
	}
}
