package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:     "3001",
		RequestTimeout: 15 * time.Second,
		DatabaseURL:    "postgres://localhost:5432/catalog",
		DBMaxConns:     10,
		DBMinConns:     2,
		JWTSecret:      "secret",
		JWTAccessTTL:   time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("missing secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing database URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseURL = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive access TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTAccessTTL = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("pool bounds inverted", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBMaxConns = 1
		cfg.DBMinConns = 5
		require.Error(t, cfg.Validate())
	})
}

func TestSplitCSV(t *testing.T) {
	require.Nil(t, splitCSV(""))
	require.Equal(t, []string{"a", "b"}, splitCSV("a, b"))
	require.Equal(t, []string{"a"}, splitCSV("a,,"))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SC_TEST_STR", " value ")
	require.Equal(t, "value", getEnv("SC_TEST_STR", "fallback"))
	require.Equal(t, "fallback", getEnv("SC_TEST_MISSING", "fallback"))

	t.Setenv("SC_TEST_INT", "42")
	require.Equal(t, 42, getInt("SC_TEST_INT", 7))
	t.Setenv("SC_TEST_INT", "junk")
	require.Equal(t, 7, getInt("SC_TEST_INT", 7))

	t.Setenv("SC_TEST_DUR", "90s")
	require.Equal(t, 90*time.Second, getDuration("SC_TEST_DUR", time.Minute))
	t.Setenv("SC_TEST_DUR", "junk")
	require.Equal(t, time.Minute, getDuration("SC_TEST_DUR", time.Minute))
}
