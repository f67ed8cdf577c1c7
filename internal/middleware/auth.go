package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/domain"
)

const (
	UserContextKey = "user"
	// AuthCookie carries the identity provider's access token.
	AuthCookie = "auth_token"
	loginPath  = "/login"
)

// UserResolver turns an access token into the user it belongs to.
type UserResolver interface {
	User(ctx context.Context, token string) (*domain.User, error)
}

// Auth creates a middleware that protects routes that require authentication.
func Auth(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			user, err := resolver.User(c.Request().Context(), cookie.Value)
			if err != nil || user == nil {
				FromContext(c.Request().Context()).Info("Rejected session token", "error", err)
				ClearAuthCookie(c)
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth stores the user when the request carries a valid token and
// lets every request through.
func OptionalAuth(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			if user, err := resolver.User(c.Request().Context(), cookie.Value); err == nil && user != nil {
				c.Set(UserContextKey, user)
			} else {
				ClearAuthCookie(c)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Auth, or nil on public routes.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserContextKey).(*domain.User)
	return u
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
