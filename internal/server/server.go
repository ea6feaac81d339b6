package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"weave_web/internal/config"
	"weave_web/internal/handlers"
	"weave_web/internal/middleware"
	"weave_web/internal/services"
	"weave_web/internal/validator"
	"weave_web/web/templates"
)

// Deps are the backend collaborators the routes delegate to.
type Deps struct {
	SignUp handlers.SignUpClient
	Auth   services.AuthChecker
}

// New builds the echo instance with middleware and routes registered.
func New(cfg *config.Config, deps Deps) (*echo.Echo, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.CustomErrorHandler(renderer)

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())

	if cfg.App.CSRFEnabled {
		e.Use(echoMiddleware.CSRFWithConfig(echoMiddleware.CSRFConfig{
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return path == "/healthz" || strings.HasPrefix(path, "/static/")
			},
			TokenLookup:    "form:_csrf",
			CookieName:     middleware.CSRFCookieName,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.App.CookieSecure,
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}

	e.Static("/static", "web/static")

	pageHandler := handlers.NewPageHandler()
	signUpHandler := handlers.NewSignUpHandler(deps.SignUp)
	navHandler := handlers.NewNavHandler()

	e.GET("/", pageHandler.Home)
	e.GET("/about", pageHandler.About)
	e.GET("/feedback", pageHandler.Feedback)
	e.GET("/verification", pageHandler.Verification)

	e.GET("/signup", signUpHandler.SignUpPage)
	e.POST("/signup", signUpHandler.HandleSignUp)

	partials := e.Group("/partials")
	partials.GET("/nav-auth", navHandler.AuthArea, middleware.LoadAuthState(deps.Auth))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e, nil
}
