package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "/", cfg.BasePath)
	require.Equal(t, "Development", cfg.Environment)
	require.Equal(t, "apotek_csrf", cfg.CSRFCookieName)
	require.Equal(t, "X-CSRF-Token", cfg.CSRFHeaderName)
	require.True(t, cfg.Seed)
	require.Empty(t, cfg.DBPath)
	require.Empty(t, cfg.OTelEndpoint)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APOTEK_HTTP_ADDR", ":9090")
	t.Setenv("APOTEK_BASE_PATH", "/apotek")
	t.Setenv("APOTEK_DB_PATH", "/tmp/apotek.db")
	t.Setenv("APOTEK_SEED", "false")
	t.Setenv("FIREBASE_PROJECT_ID", "apotek-dev")
	t.Setenv("APOTEK_OTEL_ENDPOINT", "http://collector:4318/v1/traces")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "/apotek", cfg.BasePath)
	require.Equal(t, "/tmp/apotek.db", cfg.DBPath)
	require.False(t, cfg.Seed)
	require.Equal(t, "apotek-dev", cfg.FirebaseProjectID)
	require.Equal(t, "http://collector:4318/v1/traces", cfg.OTelEndpoint)
}

func TestLoadRejectsInvalidBool(t *testing.T) {
	t.Setenv("APOTEK_SEED", "maybe")

	_, err := Load()
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

func TestValidateBlockKeyLength(t *testing.T) {
	t.Parallel()

	cfg := Config{HTTPAddr: ":8080", SessionBlockKey: "short"}
	require.Error(t, cfg.Validate())

	cfg.SessionBlockKey = strings.Repeat("k", 32)
	require.NoError(t, cfg.Validate())
}
