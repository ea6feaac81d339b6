package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weave_web/internal/middleware"
	"weave_web/internal/models"
	"weave_web/web/components"
)

// NavHandler serves the navbar's auth area, loaded after the page is shown
type NavHandler struct{}

func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

// AuthArea renders the avatar or the sign-up/log-in buttons. It expects
// middleware.LoadAuthState to have run.
func (h *NavHandler) AuthArea(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set(echo.HeaderVary, echo.HeaderCookie)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)

	state := models.AuthState{Authenticated: middleware.IsAuthenticated(c)}
	return components.NavAuth(state).Render(c.Request().Context(), c.Response())
}
