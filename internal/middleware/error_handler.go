package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"weave_web/internal/models"
	"weave_web/internal/navbar"
	"weave_web/web/components"
	"weave_web/web/templates"
)

// CustomErrorHandler creates a custom error handler for Echo
func CustomErrorHandler(renderer *templates.Renderer) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code

			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" || errorMessage == http.StatusText(code) {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusForbidden:
				errorTitle = "Access Denied"
				if errorMessage == "" {
					errorMessage = "You don't have permission to access this resource."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
			default:
				if code < 500 {
					errorTitle = http.StatusText(code)
				} else if errorMessage == "" || errorMessage == http.StatusText(code) {
					errorMessage = "Something went wrong. Please try again later."
				}
			}
		} else {
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= 500 {
			c.Logger().Error(err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		nav := renderer.Navbar(navbar.Build(c.Request().URL, models.AuthState{Loading: true}))
		props := components.ErrorPageProps{
			Title:   errorTitle,
			Message: errorMessage,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)

		if renderErr := components.ErrorPage(props, nav).Render(c.Request().Context(), c.Response()); renderErr != nil {
			// Headers are already out; plain text is all that is left.
			c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
			_, _ = c.Response().Write([]byte(errorMessage))
		}
	}
}
