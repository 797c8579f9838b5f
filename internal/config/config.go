package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Log      LogConfig
	// MediaRoot 上传图片的存储目录
	MediaRoot string
}

type HTTPConfig struct {
	Port          string
	GinMode       string
	SessionSecret string
	// SecureCookies marks the session cookie Secure; only for TLS deployments
	SecureCookies bool
}

type DatabaseConfig struct {
	Driver string // postgres | sqlite
	DSN    string
}

type CacheConfig struct {
	Size     int
	IndexTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"
	defaultSQLiteDSN   = "file:yatube.db?_foreign_keys=on"
)

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, reading env vars from system")
	}

	driver := getEnv("DB_DRIVER", "postgres")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = defaultPostgresDSN
		if driver == "sqlite" {
			dsn = defaultSQLiteDSN
		}
	}

	return Config{
		HTTP: HTTPConfig{
			Port:          getEnv("PORT", "8080"),
			GinMode:       getEnv("GIN_MODE", "release"),
			SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
			SecureCookies: getBool("SESSION_SECURE", false),
		},
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    dsn,
		},
		Cache: CacheConfig{
			Size:     getInt("CACHE_SIZE", 500),
			IndexTTL: getDuration("INDEX_CACHE_TTL", 20*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MediaRoot: getEnv("MEDIA_ROOT", "./media"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		logrus.Warnf("invalid int for env var %s: %q, using %d", key, val, fallback)
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		logrus.Warnf("invalid bool for env var %s: %q, using %t", key, val, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		logrus.Warnf("invalid duration for env var %s: %q, using %s", key, val, fallback)
		return fallback
	}
	return d
}
