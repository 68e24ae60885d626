package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	StoreDriver    string
	StoreURL       string
	StoreAccessKey string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	PasswordScheme string
	CORSOrigins    []string

	LogLevel  string
	LogFormat string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			appAddr = ":" + strings.TrimPrefix(port, ":")
		} else {
			appAddr = ":5000"
		}
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		StoreDriver:    getenv("STORE_DRIVER", "mysql"),
		StoreURL:       strings.TrimSpace(os.Getenv("STORE_URL")),
		StoreAccessKey: os.Getenv("STORE_ACCESS_KEY"),

		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),

		PasswordScheme: getenv("AUTH_PASSWORD_SCHEME", "plain"),
		CORSOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
