// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

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

	// JWT signing secret for the session cookie (required in production).
	JWTSecret    string
	CookieName   string
	CookieSecure bool

	// Public origin used for absolute image URLs and the sitemap.
	BaseURL string

	// Filesystem directories for uploaded media and cached club pages.
	MediaDir       string
	StaticClubsDir string

	// Geocoder provider.
	GeocoderURL       string
	GeocoderAPIKey    string
	GeocoderUserAgent string
	GeocodeTTL        time.Duration

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "mapka")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "mapka")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":8000")
	v.SetDefault("AUTH_COOKIE_NAME", "mapka_token")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("BASE_URL", "http://localhost:8000")
	v.SetDefault("MEDIA_DIR", "media")
	v.SetDefault("STATIC_CLUBS_DIR", "static_clubs")
	v.SetDefault("GEOCODER_URL", "https://geocode-maps.yandex.ru/1.x/")
	v.SetDefault("GEOCODER_USER_AGENT", "mapka/1.0")
	v.SetDefault("GEOCODE_TTL", "720h")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBUser:            v.GetString("DB_USER"),
		DBPass:            v.GetString("DB_PASS"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		CookieName:        v.GetString("AUTH_COOKIE_NAME"),
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		BaseURL:           strings.TrimRight(v.GetString("BASE_URL"), "/"),
		MediaDir:          v.GetString("MEDIA_DIR"),
		StaticClubsDir:    v.GetString("STATIC_CLUBS_DIR"),
		GeocoderURL:       v.GetString("GEOCODER_URL"),
		GeocoderAPIKey:    v.GetString("GEOCODER_API_KEY"),
		GeocoderUserAgent: v.GetString("GEOCODER_USER_AGENT"),
		GeocodeTTL:        v.GetDuration("GEOCODE_TTL"),
		Debug:             v.GetBool("DEBUG"),
		Port:              v.GetString("PORT"),
		TLSDomains:        splitTrimmed(v.GetString("TLS_DOMAINS")),
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
	if !c.Debug && len(c.TLSDomains) == 0 {
		log.Fatal("config: TLS_DOMAINS must be set when DEBUG is off")
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
