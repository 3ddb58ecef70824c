package router

import (
	"github.com/bookbuddy/bookbuddy-api/internal/application"
	"github.com/bookbuddy/bookbuddy-api/internal/container"
	handlers "github.com/bookbuddy/bookbuddy-api/internal/interface/http"
	"github.com/bookbuddy/bookbuddy-api/internal/router/modules"
)

type AppDeps struct {
	Sessions    *application.SessionManager
	Guard       *application.Guard
	Users       *application.UserService
	Books       *application.BookService
	AuthHandler *handlers.AuthHandler
	BookHandler *handlers.BookHandler
}

func buildAppDeps() AppDeps {
	cfg := container.GetConfig()
	store := container.GetStore()

	sessions := application.NewSessionManager(container.GetByteStore(), store, container.GetLogger())
	guard := application.NewGuard(sessions)

	users := application.NewUserService(store, store, container.GetRabbitPub(), container.GetLogger())
	books := application.NewBookService(store, container.GetGCS(), cfg.GCSBucket, container.GetLogger())

	authHandler := handlers.NewAuthHandler(
		users,
		sessions,
		container.GetJWT(),
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)
	bookHandler := handlers.NewBookHandler(books, container.GetLogger())

	return AppDeps{
		Sessions:    sessions,
		Guard:       guard,
		Users:       users,
		Books:       books,
		AuthHandler: authHandler,
		BookHandler: bookHandler,
	}
}

// InitModules builds every application module and registers it with the
// registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildAppDeps()

	r.Add(modules.NewAuthModule(deps.AuthHandler, container.GetJWT(), deps.Sessions, deps.Guard))
	r.Add(modules.NewBookModule(deps.BookHandler, container.GetJWT(), deps.Sessions, deps.Guard))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
