package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(perSecond float64) *echo.Echo {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, RateLimiter(perSecond))
	return e
}

func postFrom(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_Burst(t *testing.T) {
	tests := []struct {
		name      string
		perSecond float64
		allowed   int
	}{
		{name: "whole rate", perSecond: 5, allowed: 5},
		{name: "fractional rate rounds up", perSecond: 2.5, allowed: 3},
		{name: "sub-one rate still allows one", perSecond: 0.2, allowed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newLimitedRouter(tt.perSecond)
			for i := 0; i < tt.allowed; i++ {
				rec := postFrom(e, "192.0.2.1:1234")
				require.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i+1)
			}

			rec := postFrom(e, "192.0.2.1:1234")
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Contains(t, rec.Body.String(), "Too many requests")
		})
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	var logs bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(original)

	e := newLimitedRouter(1)

	require.Equal(t, http.StatusOK, postFrom(e, "192.0.2.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, postFrom(e, "192.0.2.1:1234").Code)

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, postFrom(e, "192.0.2.2:1234").Code)

	assert.Contains(t, logs.String(), "Rate limit exceeded")
	assert.Contains(t, logs.String(), "ip=192.0.2.1")
}
