package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet handles the GET request for the home page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "Home", pages.Home(middleware.CurrentUser(c)))
}

// Health reports that the server is up (GET /health).
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
