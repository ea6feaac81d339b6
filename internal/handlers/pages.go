package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static shell pages
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", newPageData(c, "Home", nil))
}

func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", newPageData(c, "About", nil))
}

func (h *PageHandler) Feedback(c echo.Context) error {
	return c.Render(http.StatusOK, "feedback.html", newPageData(c, "Feedback", nil))
}

// Verification is where a successful sign-up lands
func (h *PageHandler) Verification(c echo.Context) error {
	return c.Render(http.StatusOK, "verification.html", newPageData(c, "Verify your email", nil))
}
