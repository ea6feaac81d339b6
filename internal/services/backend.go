package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"weave_web/internal/config"
	"weave_web/internal/models"
)

const (
	signUpPath    = "/api/v1/user/signUp"
	checkAuthPath = "/api/v1/auth/check-auth"

	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 64 << 10
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	// Message is the backend's "error" field; empty when it sent none
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// BackendClient talks to the accounts/session API on behalf of the browser.
// Cookies passed in are forwarded as-is so the backend sees the visitor's session.
type BackendClient struct {
	baseURL string
	timeout time.Duration
	retry   RetryPolicy
	client  *http.Client
}

func NewBackendClient(cfg config.BackendConfig) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		retry:   RetryPolicy{MaxRetries: cfg.RetryMax, Backoff: cfg.RetryBackoff},
		client:  &http.Client{},
	}
}

// SignUpResult carries the cookies the backend set, to be relayed to the browser.
type SignUpResult struct {
	Cookies []*http.Cookie
}

// SignUp creates an account. It is never retried.
func (s *BackendClient) SignUp(ctx context.Context, req models.SignUpRequest, cookies []*http.Cookie) (*SignUpResult, error) {
	resp, err := s.makeRequest(ctx, http.MethodPost, signUpPath, req, cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return &SignUpResult{Cookies: resp.Cookies()}, nil
}

type checkAuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

// CheckAuth asks the backend whether the forwarded cookies belong to a live session.
func (s *BackendClient) CheckAuth(ctx context.Context, cookies []*http.Cookie) (bool, error) {
	var authenticated bool

	err := s.retry.Do(ctx, func() error {
		resp, err := s.makeRequest(ctx, http.MethodGet, checkAuthPath, nil, cookies)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := readAPIError(resp)
			if resp.StatusCode < 500 {
				return Permanent(apiErr)
			}
			return apiErr
		}

		var body checkAuthResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Permanent(fmt.Errorf("failed to decode check-auth response: %w", err))
		}
		authenticated = body.Authenticated
		return nil
	})
	if err != nil {
		return false, err
	}
	return authenticated, nil
}

// makeRequest sends a JSON request bounded by the configured timeout.
// The returned response body must be closed by the caller.
func (s *BackendClient) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, cookies []*http.Cookie) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, bodyReader)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to send request to %s: %w", endpoint, err)
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases the request's timeout context once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// ErrorMessage returns the backend-supplied message in err, or fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
