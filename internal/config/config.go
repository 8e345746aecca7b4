package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Enabled reports whether Casdoor auth should be wired at all. When the
// endpoint is empty the API runs without authentication.
func (c CasdoorConfig) Enabled() bool { return c.Endpoint != "" }

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Upstream recruiting backend. Requests against it are bounded by
	// RemoteTimeout; media-heavy response uploads get ParseTimeout.
	RemoteBaseURL string
	RemoteTimeout time.Duration
	ParseTimeout  time.Duration

	// Embedded fallback store (sqlite file path, ":memory:" allowed).
	LocalStorePath string

	RedisURL     string
	KafkaBrokers []string

	GenerationURL string

	Casdoor CasdoorConfig
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments inject variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RemoteBaseURL:  getEnv("REMOTE_BASE_URL", "http://localhost:8000"),
		RemoteTimeout:  getEnvDuration("REMOTE_TIMEOUT", 4*time.Second),
		ParseTimeout:   getEnvDuration("PARSE_TIMEOUT", 2*time.Minute),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "recruit.db"),
		RedisURL:       getEnv("REDIS_URL", ""),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		GenerationURL:  getEnv("GENERATION_URL", ""),
		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", ""),
			Application:  getEnv("CASDOOR_APPLICATION", ""),
		},
	}

	if cfg.RemoteBaseURL == "" {
		return nil, fmt.Errorf("REMOTE_BASE_URL must not be empty")
	}
	if cfg.RemoteTimeout <= 0 {
		return nil, fmt.Errorf("REMOTE_TIMEOUT must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare numbers are seconds.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
