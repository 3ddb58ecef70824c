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

// BookModule wires the catalogue and listing-management routes.
// Public: GET /api/books, GET /api/books/:id
// Authenticated: GET /api/books/mine
// Owner only: POST /api/books, PATCH /api/books/:id/availability,
// DELETE /api/books/:id
type BookModule struct {
	Handler  *handlers.BookHandler
	JWT      *helpers.JWTManager
	Sessions *application.SessionManager
	Guard    *application.Guard
}

func NewBookModule(h *handlers.BookHandler, jwt *helpers.JWTManager, sessions *application.SessionManager, guard *application.Guard) *BookModule {
	return &BookModule{Handler: h, JWT: jwt, Sessions: sessions, Guard: guard}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())

	rg.GET("/books", browseLimiter, m.Handler.List)
	rg.GET("/books/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Sessions, m.Guard))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/books/mine", m.Handler.Mine)

		owner := auth.Group("/")
		owner.Use(middleware.RequireOwner(m.Guard))
		{
			owner.POST("/books", m.Handler.Create)
			owner.PATCH("/books/:id/availability", m.Handler.SetAvailability)
			owner.DELETE("/books/:id", m.Handler.Delete)
		}
	}
}
