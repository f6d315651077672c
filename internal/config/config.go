package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Feed      FeedConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

func (c AppConfig) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local":
		return true
	}
	return false
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQueryThreshold    time.Duration
}

// Configured reports whether enough settings are present to dial Postgres.
func (c DatabaseConfig) Configured() bool {
	return c.DBHost != "" && c.DBName != "" && c.DBUser != ""
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	CookieSecure     bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type NATSConfig struct {
	URL         string
	ConnTimeout time.Duration
}

type FeedConfig struct {
	Sources         []string
	ItemSelector    string
	TitleSelector   string
	LinkSelector    string
	CompanySelector string
	LocationSelect  string
	RefreshInterval time.Duration
	Workers         int
	RateLimit       int
	LocalCacheTTL   time.Duration
}

type TelemetryConfig struct {
	ServiceName  string
	CollectorURL string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "campus-jobs"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", ""),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
		SlowQueryThreshold:    dur("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 24*time.Hour),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		CookieSecure:     opt("JWT_COOKIE_SECURE", "false") == "true",
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR", ""),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       num("REDIS_DB", 0),
		TTL:      dur("REDIS_TTL", 10*time.Minute),
	}

	cfg.NATS = NATSConfig{
		URL:         opt("NATS_URL", ""),
		ConnTimeout: dur("NATS_CONN_TIMEOUT", 10*time.Second),
	}

	cfg.Feed = FeedConfig{
		Sources:         splitList(opt("FEED_SOURCES", "")),
		ItemSelector:    opt("FEED_ITEM_SELECTOR", ".job"),
		TitleSelector:   opt("FEED_TITLE_SELECTOR", ".job-title"),
		LinkSelector:    opt("FEED_LINK_SELECTOR", "a[href]"),
		CompanySelector: opt("FEED_COMPANY_SELECTOR", ".job-company"),
		LocationSelect:  opt("FEED_LOCATION_SELECTOR", ".job-location"),
		RefreshInterval: dur("FEED_REFRESH_INTERVAL", 5*time.Minute),
		Workers:         num("FEED_WORKERS", 4),
		RateLimit:       num("FEED_RATE_LIMIT", 0),
		LocalCacheTTL:   dur("FEED_LOCAL_CACHE_TTL", time.Hour),
	}

	cfg.Telemetry = TelemetryConfig{
		ServiceName:  opt("OTEL_SERVICE_NAME", cfg.App.AppName),
		CollectorURL: opt("OTEL_COLLECTOR_URL", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
