package config

import (
	"os"
	"strings"
)

const (
	defaultPort     = "8080"
	defaultAppEnv   = "development"
	defaultLogLevel = "info"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	CatalogDB   string
	QuotePrefix string
	LogLevel    string
	LogFile     string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables.
	_ = loadDotEnv(".env")

	cfg := Config{
		AppEnv:      strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		Port:        os.Getenv("PORT"),
		CatalogDB:   os.Getenv("CATALOG_DB"),
		QuotePrefix: strings.TrimSpace(os.Getenv("QUOTE_PREFIX")),
		LogLevel:    strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg
}

// IsDev reports whether the app runs outside production.
func (c Config) IsDev() bool {
	return c.AppEnv != "production"
}
