package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/handlers"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/internal/rendering"
	"github.com/nfrund/atelier/internal/validation"
	"github.com/nfrund/atelier/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E                *echo.Echo
	Cfg              *config.Config
	provider         domain.IdentityProvider
	pages            cache.Cache
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New creates a Server wired to the given identity provider and page cache.
// Routes are not registered until RegisterRoutes is called.
func New(cfg *config.Config, provider domain.IdentityProvider, v *validation.Validator, pages cache.Cache) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.App.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	return &Server{
		E:                e,
		Cfg:              cfg,
		provider:         provider,
		pages:            pages,
		homeHandler:      handlers.NewHomeHandler(),
		authHandler:      handlers.NewAuthHandler(provider, v, pages),
		dashboardHandler: handlers.NewDashboardHandler(),
	}
}
