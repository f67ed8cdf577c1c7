package server

import (
	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/handlers"
	"github.com/nfrund/atelier/internal/identity"
	"github.com/nfrund/atelier/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.App.RateLimit)
	pageCache := cache.Middleware(s.pages, s.Cfg.Cache.TTL, cache.CookieVariant(middleware.AuthCookie))

	s.E.GET("/", s.homeHandler.HomeGet, middleware.OptionalAuth(s.provider), pageCache)

	s.E.GET("/register", s.authHandler.RegisterGet)
	s.E.POST("/register", s.authHandler.RegisterPost, rateLimiter)
	s.E.POST("/register/validate", s.authHandler.RegisterValidate)

	s.E.GET("/login", s.authHandler.LoginGet)
	s.E.POST("/login", s.authHandler.LoginPost, rateLimiter)
	s.E.POST("/login/validate", s.authHandler.LoginValidate)
	s.E.GET("/logout", s.authHandler.Logout)

	s.E.GET(identity.ConfirmPath, s.authHandler.Confirm)

	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, middleware.Auth(s.provider), pageCache)

	s.E.GET("/health", handlers.Health)
}
