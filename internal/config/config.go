package config

import (
	"os"
	"strconv"
	"time"

	"partner_cabinet/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// External stats service (FastAPI-style JSON envelope API)
	StatsServiceURL string
	StatsTimeout    time.Duration
	StatsCacheTTL   time.Duration

	// Background refresh retries
	RefreshMaxRetries int
	RefreshRetryDelay time.Duration
	RefreshWorkers    int

	// Public base URL used to build shareable referral links
	SiteBaseURL string

	// API rate limiting
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads configuration from the environment. Required values missing
// from the environment abort startup.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	statsURL := os.Getenv("STATS_SERVICE_URL")
	if statsURL == "" {
		logger.Fatal("STATS_SERVICE_URL is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	siteBaseURL := os.Getenv("SITE_BASE_URL")
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:" + port
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		StatsServiceURL: statsURL,
		StatsTimeout:    envSeconds("STATS_TIMEOUT_SECONDS", 5*time.Second),
		StatsCacheTTL:   envSeconds("STATS_CACHE_TTL_SECONDS", 5*time.Minute),

		RefreshMaxRetries: envInt("REFRESH_MAX_RETRIES", 5),
		RefreshRetryDelay: envSeconds("REFRESH_RETRY_DELAY_SECONDS", 10*time.Second),
		RefreshWorkers:    envInt("REFRESH_WORKERS", 4),

		SiteBaseURL: siteBaseURL,

		APIRateLimit:  envInt("API_RATE_LIMIT", 60),
		APIRateWindow: envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envSeconds(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
