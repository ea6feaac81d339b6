package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// empty values fall back to defaults
	for _, key := range []string{"PORT", "BACKEND_TIMEOUT", "BACKEND_RETRY_MAX", "BACKEND_RETRY_BACKOFF", "REDIS_URL", "AUTH_CACHE_TTL", "CSRF_ENABLED"} {
		t.Setenv(key, "")
	}
	t.Setenv("BACKEND_BASE_URL", "http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 0, cfg.Backend.RetryMax)
	assert.Equal(t, 200*time.Millisecond, cfg.Backend.RetryBackoff)
	assert.True(t, cfg.App.CSRFEnabled)
	assert.False(t, cfg.AuthCacheEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.weave.test/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("BACKEND_RETRY_MAX", "2")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AUTH_CACHE_TTL", "30s")
	t.Setenv("CSRF_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "https://api.weave.test", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2, cfg.Backend.RetryMax)
	assert.False(t, cfg.App.CSRFEnabled)
	assert.True(t, cfg.AuthCacheEnabled())
}

func TestLoad_MalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "PORT", value: "abc"},
		{key: "BACKEND_TIMEOUT", value: "ten seconds"},
		{key: "BACKEND_RETRY_MAX", value: "two"},
		{key: "CSRF_ENABLED", value: "maybe"},
		{key: "BACKEND_RETRY_BACKOFF", value: "0s"},
		{key: "BACKEND_RETRY_BACKOFF", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("BACKEND_BASE_URL", "http://localhost:3000")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Port: 8080},
			Backend: BackendConfig{BaseURL: "http://localhost:3000", Timeout: time.Second, RetryBackoff: time.Millisecond},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.App.Port = 0 }},
		{name: "relative base url", mutate: func(c *Config) { c.Backend.BaseURL = "/api" }},
		{name: "unsupported scheme", mutate: func(c *Config) { c.Backend.BaseURL = "ftp://example.com" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.Timeout = 0 }},
		{name: "negative retries", mutate: func(c *Config) { c.Backend.RetryMax = -1 }},
		{name: "zero retry backoff", mutate: func(c *Config) { c.Backend.RetryBackoff = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
