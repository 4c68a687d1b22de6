package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	AppAddr           string
	GinMode           string
	DatabaseURL       string
	JWTSecret         string
	CORSOrigins       []string
	LogFile           string
	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process env")
	}

	env := Env{
		AppAddr:           getEnv("APP_ADDR", ":4000"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		LogFile:           strings.TrimSpace(os.Getenv("LOG_FILE")),
		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Admin"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@limo.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin"),
	}

	for _, o := range strings.Split(os.Getenv("CORS_ORIGIN"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			env.CORSOrigins = append(env.CORSOrigins, o)
		}
	}

	return env
}

// Warn reports weak or missing settings without failing startup.
func (e Env) Warn() {
	if e.JWTSecret == "change-me" {
		logrus.Warn("JWT_SECRET is not set, using an insecure default")
	}
	if e.DatabaseURL == "" {
		logrus.Warn("DATABASE_URL not provided, running with in-memory data")
	}
	if len(e.CORSOrigins) == 0 {
		logrus.Warn("CORS_ORIGIN not set, allowing any origin")
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
