package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "time/tzdata"
)

type Config struct {
	AppEnv string

	HTTPAddr string

	// Database
	DatabaseURL       string
	DBDriver          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration
	DBMigrate         bool

	// Auth
	AuthSecret   string
	AuthIssuer   string
	AuthTokenTTL time.Duration
	BcryptCost   int

	// Events
	Timezone         string
	Location         *time.Location
	PageLimitDefault int
	PageLimitMax     int

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	// Redis backs the credential-endpoint token bucket; empty RedisAddr disables it.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LoginRLCapacity int
	LoginRLWindow   time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

const minSecretLen = 32

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "dev")
	// existing env vars win; later files never override earlier ones
	_ = godotenv.Load(env + ".env")
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.DBDriver = getEnv("DB_DRIVER", "pgx")
	cfg.DBMaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", 25)
	cfg.DBMaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", 25)
	cfg.DBConnMaxIdleTime = getDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)
	cfg.DBMigrate = getBoolEnv("DB_MIGRATE", false)

	cfg.AuthSecret = getEnv("AUTH_SECRET", "")
	cfg.AuthIssuer = getEnv("AUTH_ISSUER", "events-api")
	cfg.AuthTokenTTL = getDuration("AUTH_TOKEN_TTL", 60*time.Minute)
	cfg.BcryptCost = getIntEnv("BCRYPT_COST", 12)

	cfg.Timezone = getEnv("APP_TIMEZONE", "UTC")
	cfg.PageLimitDefault = getIntEnv("PAGE_LIMIT_DEFAULT", 10)
	cfg.PageLimitMax = getIntEnv("PAGE_LIMIT_MAX", 100)

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "events.domain")

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getBoolEnv("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getIntEnv("REDIS_DB", 0)
	cfg.LoginRLCapacity = getIntEnv("RL_LOGIN_LIMIT", 10)
	cfg.LoginRLWindow = getDuration("RL_LOGIN_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("missing AUTH_SECRET")
	}
	if cfg.AppEnv != "dev" && len(cfg.AuthSecret) < minSecretLen {
		return nil, fmt.Errorf("AUTH_SECRET must be at least %d bytes when APP_ENV != dev", minSecretLen)
	}

	switch cfg.DBDriver {
	case "pgx", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want pgx or postgres)", cfg.DBDriver)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.PageLimitDefault <= 0 {
		return nil, fmt.Errorf("PAGE_LIMIT_DEFAULT must be positive")
	}
	if cfg.PageLimitMax < cfg.PageLimitDefault {
		return nil, fmt.Errorf("PAGE_LIMIT_MAX must be >= PAGE_LIMIT_DEFAULT")
	}

	if cfg.RedisAddr != "" && (cfg.LoginRLCapacity <= 0 || cfg.LoginRLWindow <= 0) {
		return nil, fmt.Errorf("RL_LOGIN_LIMIT and RL_LOGIN_WINDOW must be positive when REDIS_ADDR is set")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getBoolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
