package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave_web/internal/config"
	"weave_web/internal/services"
)

// fakeBackend stands in for the accounts API and counts the calls it gets.
type fakeBackend struct {
	signUpCalls    atomic.Int32
	checkAuthCalls atomic.Int32
	lastSession    atomic.Value

	signUp    http.HandlerFunc
	checkAuth http.HandlerFunc
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		f.lastSession.Store(cookie.Value)
	}

	switch r.URL.Path {
	case "/api/v1/user/signUp":
		f.signUpCalls.Add(1)
		f.signUp(w, r)
	case "/api/v1/auth/check-auth":
		f.checkAuthCalls.Add(1)
		f.checkAuth(w, r)
	default:
		http.NotFound(w, r)
	}
}

func newFakeBackend(t *testing.T) (*fakeBackend, string) {
	t.Helper()

	backend := &fakeBackend{
		signUp: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		},
		checkAuth: func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"authenticated":false}`))
		},
	}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return backend, server.URL
}

func newTestConfig(backendURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: 8080},
		Backend: config.BackendConfig{
			BaseURL: backendURL,
			Timeout: 2 * time.Second,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	client := services.NewBackendClient(cfg.Backend)
	e, err := New(cfg, Deps{SignUp: client, Auth: client})
	require.NoError(t, err)
	return e
}

func janeDoeForm() url.Values {
	return url.Values{
		"fullName":        {"Jane Doe"},
		"email":           {"jane@example.com"},
		"password":        {"longenough1"},
		"confirmPassword": {"longenough1"},
		"terms":           {"on"},
	}
}

func postSignUp(e *echo.Echo, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSignUp_LocalValidationBlocksBackendCall(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{
			name: "password mismatch",
			mutate: func(v url.Values) {
				v.Set("confirmPassword", "somethingelse")
			},
			message: `data-field="confirmPassword">Passwords do not match</p>`,
		},
		{
			name: "empty full name",
			mutate: func(v url.Values) {
				v.Set("fullName", "")
			},
			message: `data-field="fullName">Name cannot be empty</p>`,
		},
		{
			name: "email without at sign",
			mutate: func(v url.Values) {
				v.Set("email", "jane.example.com")
			},
			message: `data-field="email">Invalid email</p>`,
		},
		{
			name: "short password",
			mutate: func(v url.Values) {
				v.Set("password", "short")
				v.Set("confirmPassword", "short")
			},
			message: `data-field="password">Password must be at least 8 characters</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, backendURL := newFakeBackend(t)
			e := newTestServer(t, newTestConfig(backendURL))

			form := janeDoeForm()
			tt.mutate(form)
			rec := postSignUp(e, form)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
			assert.Equal(t, int32(0), backend.signUpCalls.Load())
		})
	}
}

func TestSignUp_ValidationKeepsNameAndEmailButNotPasswords(t *testing.T) {
	_, backendURL := newFakeBackend(t)
	e := newTestServer(t, newTestConfig(backendURL))

	form := janeDoeForm()
	form.Set("confirmPassword", "mismatch-secret")
	rec := postSignUp(e, form)

	body := rec.Body.String()
	assert.Contains(t, body, `value="Jane Doe"`)
	assert.Contains(t, body, `value="jane@example.com"`)
	assert.NotContains(t, body, "longenough1")
	assert.NotContains(t, body, "mismatch-secret")
}

func TestSignUp_SuccessRedirectsToVerification(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	backend.signUp = func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "pending_verification", Value: "1", Path: "/"})
		w.WriteHeader(http.StatusCreated)
	}
	e := newTestServer(t, newTestConfig(backendURL))

	rec := postSignUp(e, janeDoeForm(), &http.Cookie{Name: "session", Value: "visitor-1"})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/verification", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "pending_verification=1")
	assert.Equal(t, int32(1), backend.signUpCalls.Load())
	assert.Equal(t, "visitor-1", backend.lastSession.Load())
}

func TestSignUp_BackendErrorIsShown(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	backend.signUp = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Email already in use"}`))
	}
	e := newTestServer(t, newTestConfig(backendURL))

	rec := postSignUp(e, janeDoeForm())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p class="form-error" role="alert">Email already in use</p>`)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, int32(1), backend.signUpCalls.Load())
}

func TestSignUp_BackendUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	e := newTestServer(t, newTestConfig(dead.URL))

	rec := postSignUp(e, janeDoeForm())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `role="alert">Signup failed</p>`)
	assert.Contains(t, rec.Body.String(), ">Sign Up</button>")
}

func TestSignUp_CSRFProtected(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	cfg := newTestConfig(backendURL)
	cfg.App.CSRFEnabled = true
	e := newTestServer(t, cfg)

	rec := postSignUp(e, janeDoeForm())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), backend.signUpCalls.Load())

	page := get(e, "/signup")
	require.Equal(t, http.StatusOK, page.Code)

	var csrfCookie *http.Cookie
	for _, cookie := range page.Result().Cookies() {
		if cookie.Name == "_csrf" {
			csrfCookie = cookie
		}
	}
	require.NotNil(t, csrfCookie)
	assert.Contains(t, page.Body.String(), `name="_csrf" value="`+csrfCookie.Value+`"`)

	form := janeDoeForm()
	form.Set("_csrf", csrfCookie.Value)
	rec = postSignUp(e, form, csrfCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, int32(1), backend.signUpCalls.Load())
}

func TestPages_DoNotWaitForAuthCheck(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	e := newTestServer(t, newTestConfig(backendURL))

	for _, path := range []string{"/", "/about", "/feedback", "/signup", "/verification"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `hx-get="/partials/nav-auth"`, path)
	}
	assert.Equal(t, int32(0), backend.checkAuthCalls.Load())
}

func TestNavAuth_AuthenticatedShowsAvatar(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	backend.checkAuth = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"authenticated":true}`))
	}
	e := newTestServer(t, newTestConfig(backendURL))

	rec := get(e, "/partials/nav-auth")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "navbar-avatar")
	assert.NotContains(t, rec.Body.String(), "Log in")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, int32(1), backend.checkAuthCalls.Load())
}

func TestNavAuth_NetworkFailureShowsSignedOutButtons(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	e := newTestServer(t, newTestConfig(dead.URL))

	rec := get(e, "/partials/nav-auth")

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `href="/signup">Sign up</a>`)
	assert.Contains(t, body, `href="/login">Log in</a>`)
	assert.NotContains(t, body, "navbar-avatar")
	assert.NotContains(t, body, "Something went wrong")
}

func TestNavAuth_BackendRejectionShowsSignedOutButtons(t *testing.T) {
	backend, backendURL := newFakeBackend(t)
	backend.checkAuth = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	e := newTestServer(t, newTestConfig(backendURL))

	rec := get(e, "/partials/nav-auth")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign up")
}

func TestErrorPage_NotFound(t *testing.T) {
	_, backendURL := newFakeBackend(t)
	e := newTestServer(t, newTestConfig(backendURL))

	rec := get(e, "/does-not-exist")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Page Not Found</h1>")
	assert.Contains(t, rec.Body.String(), "Weave Logo")
}

func TestHealthz(t *testing.T) {
	_, backendURL := newFakeBackend(t)
	e := newTestServer(t, newTestConfig(backendURL))

	rec := get(e, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
