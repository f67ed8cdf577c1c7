package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/handlers"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/web/src/templates/layouts"
	"github.com/nfrund/atelier/web/src/templates/pages"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// *echo.HTTPError are logged with a stack trace and answered with a 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else {
			middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"stack_trace", string(debug.Stack()),
			)
		}

		if err := respond(c, code, message); err != nil {
			middleware.FromContext(c.Request().Context()).Error("Failed to write error response", "error", err)
		}
	}
}

func respond(c echo.Context, code int, message string) error {
	req := c.Request()
	if req.Method == http.MethodHead {
		return c.NoContent(code)
	}
	if wantsJSON(req) {
		return c.JSON(code, handlers.ErrorResponse{
			Code:    strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_"),
			Message: message,
		})
	}
	title := fmt.Sprintf("%d", code)
	err := c.Render(code, "", layouts.Base(layouts.PageProps{Title: title}, pages.Error(code, message)))
	if err != nil && !c.Response().Committed {
		// The page could not be rendered; still answer with the status.
		middleware.FromContext(req.Context()).Warn("Failed to render error page", "error", err)
		return c.String(code, message)
	}
	return err
}

func wantsJSON(req *http.Request) bool {
	accept := req.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
