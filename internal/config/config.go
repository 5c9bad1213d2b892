package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env  string
	Port int

	StoreDriver   string
	DBURL         string
	MongoURI      string
	MongoDatabase string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	JWTSecret           string
	JWTAccessTTLMinutes int

	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string

	OTelEnabled     bool
	OTelEndpoint    string
	OTelSampleRatio float64

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

// Load reads the environment. A .env file in the working directory is applied first
// when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		DBURL:         buildDBURL(),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "enrollhub"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		ProfileCacheTTL: time.Duration(getEnvInt("PROFILE_CACHE_TTL_SECONDS", 30)) * time.Second,

		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTAccessTTLMinutes: getEnvInt("JWT_ACCESS_TTL_MINUTES", 60),

		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminFirstName: getEnv("ADMIN_FIRST_NAME", "Admin"),
		AdminLastName:  getEnv("ADMIN_LAST_NAME", "User"),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" && c.Env != "dev" && c.Env != "test" {
		return errors.New("JWT_SECRET is required outside dev/test")
	}

	if c.Port <= 0 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	return nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}

// SigningSecret falls back to a fixed development secret so a bare `go run` works locally.
func (c Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return "dev-only-insecure-secret"
	}
	return c.JWTSecret
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "enrollhub")
	pass := getEnv("DB_PASSWORD", "enrollhub")
	name := getEnv("DB_NAME", "enrollhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env value, using fallback", "key", key, "value", v, "fallback", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("invalid float env value, using fallback", "key", key, "value", v, "fallback", fallback)
			return fallback
		}
		return f
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env value, using fallback", "key", key, "value", v, "fallback", fallback)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
