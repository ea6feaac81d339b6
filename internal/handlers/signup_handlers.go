package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"weave_web/internal/logger"
	"weave_web/internal/middleware"
	"weave_web/internal/models"
	"weave_web/internal/services"
	"weave_web/internal/validator"
)

const signUpFailedMessage = "Signup failed"

// SignUpClient creates accounts on the backend
type SignUpClient interface {
	SignUp(ctx context.Context, req models.SignUpRequest, cookies []*http.Cookie) (*services.SignUpResult, error)
}

// SignUpHandler handles the sign-up form
type SignUpHandler struct {
	backend SignUpClient
}

func NewSignUpHandler(backend SignUpClient) *SignUpHandler {
	return &SignUpHandler{backend: backend}
}

// SignUpPage renders the empty form
func (h *SignUpHandler) SignUpPage(c echo.Context) error {
	return h.render(c, http.StatusOK, SignUpForm{})
}

// HandleSignUp validates the form and, when it passes, creates the account.
func (h *SignUpHandler) HandleSignUp(c echo.Context) error {
	var input models.SignUpInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	form := SignUpForm{
		Form: models.SignUpInput{FullName: input.FullName, Email: input.Email},
	}

	if err := c.Validate(&input); err != nil {
		fieldErrors, ok := validator.AsFieldErrors(err)
		if !ok {
			return err
		}
		form.FieldErrors = fieldErrors
		return h.render(c, http.StatusUnprocessableEntity, form)
	}

	status, err := h.submit(c, input, &form.Submission)
	if err != nil {
		if c.Request().Context().Err() != nil {
			slog.Debug("Sign-up abandoned by the browser", "error", err)
			return nil
		}
		return h.render(c, status, form)
	}

	return c.Redirect(http.StatusSeeOther, "/verification")
}

// submit makes the single backend call of an attempt. On failure it returns
// the status the form should be re-rendered with.
func (h *SignUpHandler) submit(c echo.Context, input models.SignUpInput, state *models.SubmissionState) (int, error) {
	state.Begin()
	defer state.Done()

	email := logger.MaskEmail(input.Email)
	slog.Info("Submitting sign-up", "email", email)

	result, err := h.backend.SignUp(c.Request().Context(), input.Request(), middleware.ForwardedCookies(c))
	if err != nil {
		state.Fail(services.ErrorMessage(err, signUpFailedMessage))

		status := http.StatusBadGateway
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			status = apiErr.Status
		}

		slog.Warn("Sign-up rejected", "email", email, "status", status, "error", err)
		return status, err
	}

	for _, cookie := range result.Cookies {
		c.SetCookie(cookie)
	}

	slog.Info("Sign-up accepted", "email", email)
	return http.StatusSeeOther, nil
}

func (h *SignUpHandler) render(c echo.Context, status int, form SignUpForm) error {
	return c.Render(status, "signup.html", newPageData(c, "Sign Up", form))
}
