package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "INDEX_CACHE_TTL", "CACHE_SIZE", "MEDIA_ROOT", "SESSION_SECURE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "8080", cfg.HTTP.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, defaultPostgresDSN, cfg.Database.DSN)
	require.Equal(t, 20*time.Second, cfg.Cache.IndexTTL)
	require.Equal(t, 500, cfg.Cache.Size)
	require.Equal(t, "./media", cfg.MediaRoot)
	require.False(t, cfg.HTTP.SecureCookies, "plain HTTP must keep the session cookie")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("CACHE_SIZE", "not-a-number")
	t.Setenv("SESSION_SECURE", "true")

	cfg := Load()

	require.Equal(t, "9000", cfg.HTTP.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, defaultSQLiteDSN, cfg.Database.DSN)
	require.Equal(t, time.Minute, cfg.Cache.IndexTTL)
	require.Equal(t, 500, cfg.Cache.Size)
	require.True(t, cfg.HTTP.SecureCookies)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SESSION_SECURE", "maybe")
	require.False(t, Load().HTTP.SecureCookies)
}
