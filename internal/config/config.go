package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort    string
	CORSOrigins string
	LogLevel    string

	SessionSecret string
	SessionTTL    time.Duration

	// Optional: enables the postgres audit trail, otherwise it stays in memory
	DatabaseDSN string

	MenuFile  string
	StockFile string

	// Optional: order events go to the log when no brokers are set
	KafkaBrokers []string
	KafkaTopic   string

	ChatMinDelay  time.Duration
	ChatMaxDelay  time.Duration
	ChatRateLimit int // messages per minute per session

	DecrementMenuStock bool
}

const (
	defaultCORSOrigins = "http://localhost:5173"
	minSecretLength    = 32
)

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
		MenuFile:      getEnv("MENU_FILE", "configs/menu.yaml"),
		StockFile:     getEnv("STOCK_FILE", "configs/stock.yaml"),
		KafkaTopic:    getEnv("KAFKA_ORDER_TOPIC", "restaurant.orders"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ChatMinDelay, err = getDuration("CHAT_MIN_DELAY", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ChatMaxDelay, err = getDuration("CHAT_MAX_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ChatRateLimit, err = getInt("CHAT_RATE_PER_MIN", 30); err != nil {
		return nil, err
	}
	if cfg.DecrementMenuStock, err = getBool("DECREMENT_MENU_STOCK", true); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}
	if len(cfg.SessionSecret) < minSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.ChatMaxDelay < cfg.ChatMinDelay {
		return nil, fmt.Errorf("CHAT_MAX_DELAY must not be below CHAT_MIN_DELAY")
	}

	return cfg, nil
}

// Warnings lists settings that are fine for local development only.
func (c *Config) Warnings() []string {
	var out []string
	if c.CORSOrigins == defaultCORSOrigins {
		out = append(out, "CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production")
	}
	if c.DatabaseDSN == "" {
		out = append(out, "DATABASE_DSN is not set, audit logs are kept in memory")
	}
	if len(c.KafkaBrokers) == 0 {
		out = append(out, "KAFKA_BROKERS is not set, order events are only logged")
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
