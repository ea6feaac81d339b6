package handlers

import (
	"github.com/labstack/echo/v4"

	"weave_web/internal/models"
	"weave_web/internal/navbar"
	"weave_web/internal/validator"
	"weave_web/web/templates"
)

// SignUpForm is the page-specific data of signup.html
type SignUpForm struct {
	// Form only ever carries the name and email back; passwords are not echoed
	Form        models.SignUpInput
	FieldErrors validator.FieldErrors
	Submission  models.SubmissionState
}

// newPageData fills the layout data shared by every page. The navbar starts
// with its auth area loading; the browser fetches it separately.
func newPageData(c echo.Context, title string, data interface{}) templates.PageData {
	return templates.PageData{
		Title:     title,
		Nav:       navbar.Build(c.Request().URL, models.AuthState{Loading: true}),
		CSRFToken: getStringFromContext(c, "csrf"),
		Data:      data,
	}
}

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val, ok := c.Get(key).(string)
	if !ok {
		return ""
	}
	return val
}
