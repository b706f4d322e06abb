// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required in production).
	JWTSecret string

	// Puntingform upstream API.
	PuntingformAPIKey  string
	PuntingformBaseURL string

	// Server
	Debug       bool
	Port        string
	MetricsPort string
	TLSDomains  []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "racecards")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "racecards")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("METRICS_PORT", "9095")
	v.SetDefault("PUNTINGFORM_BASE_URL", "https://api.puntingform.com.au")
	v.SetDefault("TLS_DOMAINS", "racecards.app,www.racecards.app")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBUser:             v.GetString("DB_USER"),
		DBPass:             v.GetString("DB_PASS"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		PuntingformAPIKey:  v.GetString("PUNTINGFORM_API_KEY"),
		PuntingformBaseURL: v.GetString("PUNTINGFORM_BASE_URL"),
		Debug:              v.GetBool("DEBUG"),
		Port:               v.GetString("PORT"),
		MetricsPort:        v.GetString("METRICS_PORT"),
		TLSDomains:         splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
