package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CSRFCookieName is the cookie echo's CSRF middleware uses; it belongs to
// this site only and is never forwarded to the backend.
const CSRFCookieName = "_csrf"

// ForwardedCookies returns the browser's cookies that should accompany a
// backend call made on its behalf.
func ForwardedCookies(c echo.Context) []*http.Cookie {
	var cookies []*http.Cookie
	for _, cookie := range c.Request().Cookies() {
		if cookie.Name == CSRFCookieName {
			continue
		}
		cookies = append(cookies, cookie)
	}
	return cookies
}
