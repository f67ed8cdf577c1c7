package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/handlers"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/stretchr/testify/assert"
)

type staticResolver struct{ user *domain.User }

func (s staticResolver) User(context.Context, string) (*domain.User, error) {
	return s.user, nil
}

func TestHomeAndDashboard(t *testing.T) {
	e := setupAuthTest(t)
	resolver := staticResolver{user: &domain.User{ID: "u1", Email: "ada@example.com"}}
	e.GET("/", handlers.NewHomeHandler().HomeGet, middleware.OptionalAuth(resolver))
	e.GET("/dashboard", handlers.NewDashboardHandler().DashboardGet, middleware.Auth(resolver))
	e.GET("/health", handlers.Health)

	t.Run("anonymous home links to sign up", func(t *testing.T) {
		rec := get(e, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/register"`)
		assert.NotContains(t, rec.Body.String(), "ada@example.com")
	})

	t.Run("signed in user sees the dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookie, Value: "t"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="account-card"`)
		assert.Contains(t, rec.Body.String(), "ada@example.com")
		assert.Contains(t, rec.Body.String(), `href="/logout"`)
	})

	t.Run("health", func(t *testing.T) {
		rec := get(e, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}
