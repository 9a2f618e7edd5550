package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingStoreConfig is returned when the record store cannot be reached
// because STORE_URL or STORE_KEY is absent.
var ErrMissingStoreConfig = errors.New("missing record store configuration (STORE_URL/STORE_KEY)")

// ErrMissingAdminSecret is returned when neither ADMIN_PASSWORD nor
// ADMIN_PASSWORD_HASH is set.
var ErrMissingAdminSecret = errors.New("missing admin secret (ADMIN_PASSWORD or ADMIN_PASSWORD_HASH)")

// Store backends selected from the STORE_URL scheme.
const (
	StoreBackendREST   = "rest"
	StoreBackendMySQL  = "mysql"
	StoreBackendSQLite = "sqlite"
)

type Config struct {
	Port         string
	GinMode      string
	Environment  string
	DebugSQL     bool
	StoreURL     string
	StoreKey     string
	StoreTimeout time.Duration

	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration
	SecureCookies     bool

	ProductName    string
	Location       *time.Location
	AllowedOrigins []string
	NotifyEmails   []string
	Mail           MailConfig
}

// Load reads the configuration from the environment. The caller is expected
// to have loaded .env already.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("SERVER_PORT", "8080"),
		GinMode:           strings.ToLower(os.Getenv("GIN_MODE")),
		Environment:       strings.ToLower(os.Getenv("ENVIRONMENT")),
		DebugSQL:          strings.EqualFold(os.Getenv("DEBUG_SQL"), "true"),
		StoreURL:          strings.TrimSpace(os.Getenv("STORE_URL")),
		StoreKey:          strings.TrimSpace(os.Getenv("STORE_KEY")),
		StoreTimeout:      time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 15)) * time.Second,
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ProductName:       getEnv("PRODUCT_NAME", "instabarakat"),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		NotifyEmails:      splitList(os.Getenv("NOTIFY_EMAILS")),
		Mail:              loadMailConfig(),
	}
	cfg.SecureCookies = cfg.Environment == "production"

	if cfg.StoreURL == "" || cfg.StoreKey == "" {
		return nil, ErrMissingStoreConfig
	}
	if _, err := cfg.StoreBackend(); err != nil {
		return nil, err
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, ErrMissingAdminSecret
	}

	tz := getEnv("TIMEZONE", "Asia/Dushanbe")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// StoreBackend derives the store implementation from the STORE_URL scheme.
func (c *Config) StoreBackend() (string, error) {
	lower := strings.ToLower(c.StoreURL)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return StoreBackendREST, nil
	case strings.HasPrefix(lower, "mysql://"):
		return StoreBackendMySQL, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return StoreBackendSQLite, nil
	}
	return "", fmt.Errorf("unsupported STORE_URL scheme: %q", c.StoreURL)
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
