package config

import (
	"os"
	"strings"
)

const (
	envDev = "dev"

	defaultDBPath        = "./netkar.db"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultCurrencyLabel = "TL"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv        string
	DBPath        string
	Port          string
	LogLevel      string
	CurrencyLabel string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development convenience; production injects real env vars.
	_ = loadDotEnv(".env")

	return Config{
		AppEnv:        getEnv("APP_ENV", envDev),
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		Port:          getEnv("PORT", defaultPort),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		CurrencyLabel: getEnv("CURRENCY_LABEL", defaultCurrencyLabel),
	}
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == envDev || c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
