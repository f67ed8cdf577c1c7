package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/web/src/templates/pages"
)

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardGet shows the user's dashboard page. It must run behind
// middleware.Auth.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}
	return renderPage(c, http.StatusOK, "Dashboard", pages.Dashboard(c.Request().Context(), user))
}
