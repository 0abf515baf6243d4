package bootstrap

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string
	OwnerOpenID string

	HMACKey      []byte
	CookieSecure bool
	CookieDomain string

	PortalClientID     string
	PortalClientSecret string
	PortalRedirectURL  string
	PortalAuthURL      string
	PortalTokenURL     string
	PortalUserInfoURL  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ConsultationRateMax    int
	ConsultationRateWindow time.Duration

	StaticDir string
	IndexHTML string
}

func LoadConfig() *Config {
	// Local development reads a .env file; deployed environments set real
	// env vars and the missing file is fine.
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		OwnerOpenID: getEnv("OWNER_OPEN_ID", ""),

		HMACKey:      []byte(getEnv("HMAC_KEY", "change-me-in-production")),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),

		PortalClientID:     getEnv("PORTAL_CLIENT_ID", ""),
		PortalClientSecret: getEnv("PORTAL_CLIENT_SECRET", ""),
		PortalRedirectURL:  getEnv("PORTAL_REDIRECT_URL", ""),
		PortalAuthURL:      getEnv("PORTAL_AUTH_URL", ""),
		PortalTokenURL:     getEnv("PORTAL_TOKEN_URL", ""),
		PortalUserInfoURL:  getEnv("PORTAL_USERINFO_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		ConsultationRateMax:    getEnvInt("CONSULTATION_RATE_MAX", 5),
		ConsultationRateWindow: getEnvDuration("CONSULTATION_RATE_WINDOW", time.Hour),

		StaticDir: getEnv("STATIC_DIR", "./static"),
		IndexHTML: getEnv("INDEX_HTML", "./static/index.html"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
