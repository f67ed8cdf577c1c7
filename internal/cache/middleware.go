package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderCache reports whether a page came from the cache.
const HeaderCache = "X-Cache"

// Variant separates cached copies of the same path, e.g. per signed-in user.
type Variant func(c echo.Context) string

// CookieVariant keys pages by a digest of the named cookie. Requests without
// the cookie share the "anon" copy.
func CookieVariant(name string) Variant {
	return func(c echo.Context) string {
		cookie, err := c.Cookie(name)
		if err != nil || cookie.Value == "" {
			return "anon"
		}
		sum := sha256.Sum256([]byte(cookie.Value))
		return hex.EncodeToString(sum[:8])
	}
}

// recorder copies everything written to the client into buf.
type recorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware serves GET pages from store and stores 200 HTML responses that
// do not set cookies. Cache failures never fail the request.
func Middleware(store Cache, ttl time.Duration, variant Variant) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			ctx := req.Context()
			path := normalize(req.URL.Path)

			version, err := store.Version(ctx, path)
			if err != nil {
				slog.WarnContext(ctx, "Page cache unavailable", "path", path, "error", err)
				return next(c)
			}
			key := path + "|" + version + "|" + variant(c)

			body, ok, err := store.Get(ctx, key)
			if err != nil {
				slog.WarnContext(ctx, "Failed to read page cache", "path", path, "error", err)
			}
			if ok {
				c.Response().Header().Set(HeaderCache, "HIT")
				return c.HTMLBlob(http.StatusOK, body)
			}

			c.Response().Header().Set(HeaderCache, "MISS")
			rec := &recorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}

			res := c.Response()
			if res.Status != http.StatusOK || res.Header().Get(echo.HeaderSetCookie) != "" ||
				!strings.HasPrefix(res.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
				return nil
			}
			if err := store.Set(ctx, key, rec.buf.Bytes(), ttl); err != nil {
				slog.WarnContext(ctx, "Failed to write page cache", "path", path, "error", err)
			}
			return nil
		}
	}
}
