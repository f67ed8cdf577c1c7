package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	store := NewMemory()
	e := echo.New()
	calls := 0
	e.GET("/", func(c echo.Context) error {
		calls++
		return c.HTML(http.StatusOK, "<h1>home</h1>")
	}, Middleware(store, time.Minute, CookieVariant("auth_token")))

	get := func(cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "auth_token", Value: cookie})
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := get("")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(HeaderCache))

	second := get("")
	assert.Equal(t, "HIT", second.Header().Get(HeaderCache))
	assert.Equal(t, "<h1>home</h1>", second.Body.String())
	assert.Equal(t, 1, calls)

	t.Run("signed-in users get their own copy", func(t *testing.T) {
		rec := get("token-a")
		assert.Equal(t, "MISS", rec.Header().Get(HeaderCache))
		assert.Equal(t, 2, calls)
	})

	t.Run("layout invalidation forces a re-render", func(t *testing.T) {
		require.NoError(t, store.Invalidate(context.Background(), "/", ScopeLayout))
		rec := get("")
		assert.Equal(t, "MISS", rec.Header().Get(HeaderCache))
		assert.Equal(t, 3, calls)
	})
}

func TestMiddleware_SkipsResponsesThatSetCookies(t *testing.T) {
	store := NewMemory()
	e := echo.New()
	calls := 0
	e.GET("/", func(c echo.Context) error {
		calls++
		c.SetCookie(&http.Cookie{Name: "flash", Value: "x"})
		return c.HTML(http.StatusOK, "<p>flash</p>")
	}, Middleware(store, time.Minute, CookieVariant("auth_token")))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "MISS", rec.Header().Get(HeaderCache))
	}
	assert.Equal(t, 2, calls)
}

func TestMiddleware_SkipsErrors(t *testing.T) {
	store := NewMemory()
	e := echo.New()
	calls := 0
	e.GET("/", func(c echo.Context) error {
		calls++
		return c.HTML(http.StatusNotFound, "<p>nope</p>")
	}, Middleware(store, time.Minute, CookieVariant("auth_token")))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2, calls)
}
