package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"

	"weave_web/internal/config"
	"weave_web/internal/logger"
	"weave_web/internal/models"
	"weave_web/internal/services"
)

// cookieFlags collects repeated -cookie name=value flags.
type cookieFlags []*http.Cookie

func (f *cookieFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, c := range *f {
		parts = append(parts, c.Name)
	}
	return strings.Join(parts, ",")
}

func (f *cookieFlags) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return &flagError{value: value}
	}
	*f = append(*f, &http.Cookie{Name: name, Value: val})
	return nil
}

type flagError struct{ value string }

func (e *flagError) Error() string { return "cookie must look like name=value, got " + e.value }

func main() {
	var cookies cookieFlags
	checkAuth := flag.Bool("check-auth", false, "Call the check-auth endpoint")
	signUp := flag.Bool("signup", false, "Call the sign-up endpoint")
	name := flag.String("name", "", "Full name for -signup")
	email := flag.String("email", "", "Email for -signup")
	password := flag.String("password", "", "Password for -signup")
	flag.Var(&cookies, "cookie", "Cookie to forward, name=value (repeatable)")
	flag.Parse()

	if *checkAuth == *signUp {
		log.Fatal("Pass exactly one of -check-auth or -signup")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := services.NewBackendClient(cfg.Backend)
	ctx := context.Background()

	if *checkAuth {
		authenticated, err := client.CheckAuth(ctx, cookies)
		if err != nil {
			log.Fatalf("check-auth failed: %v", err)
		}
		log.Printf("check-auth against %s: authenticated=%t", cfg.Backend.BaseURL, authenticated)
		return
	}

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("-signup needs -name, -email and -password")
	}

	log.Printf("Signing up %s against %s", logger.MaskEmail(*email), cfg.Backend.BaseURL)
	result, err := client.SignUp(ctx, models.SignUpRequest{FullName: *name, Email: *email, Password: *password}, cookies)
	if err != nil {
		log.Fatalf("sign-up failed: %s (%v)", services.ErrorMessage(err, "Signup failed"), err)
	}
	log.Printf("sign-up accepted, backend set %d cookie(s)", len(result.Cookies))
}
