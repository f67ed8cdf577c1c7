package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/internal/view"
	"github.com/nfrund/atelier/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
}

const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"
	headerHXTrigger  = "HX-Trigger-Name"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}

// renderPage wraps content in the base layout with the pending flashes.
func renderPage(c echo.Context, status int, title string, content cmp.Node) error {
	props := layouts.PageProps{
		Title:   title,
		Flashes: view.GetFlashData(c),
		User:    middleware.CurrentUser(c),
	}
	return c.Render(status, "", layouts.Base(props, content))
}

// renderForm answers htmx requests with fragment and everything else with
// the full page.
func renderForm(c echo.Context, status int, title string, fragment, page cmp.Node) error {
	if isHTMX(c) {
		return c.Render(status, "", fragment)
	}
	return renderPage(c, status, title, page)
}

// redirectTo sends the browser to path. htmx requests get HX-Redirect so the
// whole page is replaced instead of swapping the response into the form.
func redirectTo(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set(headerHXRedirect, path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}
