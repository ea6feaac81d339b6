package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "weave_web"

// New builds a logger for env: JSON in production, text elsewhere, with debug
// output in development.
func New(env string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if isDevelopment(env) {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if isProduction(env) {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("service", serviceName, "env", env)
}

// Setup installs New(env, os.Stdout) as the default slog logger.
func Setup(env string) *slog.Logger {
	l := New(env, os.Stdout)
	slog.SetDefault(l)
	l.Debug("logger initialized")
	return l
}

func isProduction(env string) bool {
	return env == "production" || env == "prod"
}

func isDevelopment(env string) bool {
	switch env {
	case "local", "dev", "development":
		return true
	}
	return false
}
