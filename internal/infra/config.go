package infra

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents console configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	APIBaseURL          string
	APITimeout          time.Duration
	SessionCookieName   string
	SessionCookieSecure bool
	SessionTTL          time.Duration
	PageSize            int
	CORSAllowedOrigins  []string
	LoginRateLimit      int
	GeoIPDBPath         string
	DefaultLocale       string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	ShutdownTimeout     time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	appEnv := getEnv("APP_ENV", "development")
	cfg := &Config{
		AppEnv:              appEnv,
		Port:                getEnv("PORT", "3000"),
		APIBaseURL:          strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		APITimeout:          time.Second * time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 30)),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "adminToken"),
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", appEnv == "production"),
		SessionTTL:          time.Hour * time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)),
		PageSize:            getEnvInt("PAGE_SIZE", 100),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:      getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 10),
		GeoIPDBPath:         os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:       getEnv("DEFAULT_LOCALE", "en"),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		ShutdownTimeout:     time.Second * time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 15)),
	}

	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL must be an absolute url, got %q", cfg.APIBaseURL)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
