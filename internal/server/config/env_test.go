package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := defaultConfig()

	applyEnv(cfg, mapLookup(map[string]string{
		EnvHTTPAddr:         ":9000",
		EnvGRPCAddr:         ":9001",
		EnvEnv:              "prod",
		EnvHTTPTimeout:      "2s",
		EnvHTTPIdleTimeout:  "1m",
		EnvShutdownTimeout:  "",
		EnvDefaultUserName:  "admin",
		EnvDefaultUserEmail: "admin@example.com",
		EnvDatabaseURL:      "postgres://from-url",
	}))

	assert.Equal(t, ":9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, ":9001", cfg.EndpointAddrGRPC)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Minute, cfg.HTTPIdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout, "empty value keeps current")
	assert.Equal(t, "admin", cfg.DefaultUserName)
	assert.Equal(t, "admin@example.com", cfg.DefaultUserEmail)
	assert.Equal(t, "postgres://from-url", cfg.DatabaseDSN)
}

func TestApplyEnv_DSNWinsOverDatabaseURL(t *testing.T) {
	cfg := defaultConfig()

	applyEnv(cfg, mapLookup(map[string]string{
		EnvDatabaseURL: "postgres://from-url",
		EnvDatabaseDSN: "postgres://from-dsn",
	}))

	assert.Equal(t, "postgres://from-dsn", cfg.DatabaseDSN)
}

func TestApplyEnv_BadDurationPanics(t *testing.T) {
	cfg := defaultConfig()

	require.Panics(t, func() {
		applyEnv(cfg, mapLookup(map[string]string{EnvHTTPTimeout: "soon"}))
	})
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	isolateEnv(t)
	// godotenv does not overwrite variables that are already set, even to
	// "", so the one read from the file must be absent from the environment.
	require.NoError(t, os.Unsetenv(EnvHTTPAddr))
	t.Cleanup(func() { _ = os.Unsetenv(EnvHTTPAddr) })

	dotEnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotEnvFile, []byte(EnvHTTPAddr+"=:8123\n"), 0o600))

	cfg := defaultConfig()
	parseEnv(cfg)

	assert.Equal(t, ":8123", cfg.EndpointAddrHTTP)
}

func TestParseEnv_MissingDotEnvIsIgnored(t *testing.T) {
	isolateEnv(t)

	cfg := defaultConfig()
	require.NotPanics(t, func() { parseEnv(cfg) })
	assert.Equal(t, defaultConfig(), cfg)
}
