package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
document: team.conf
model: UvA
store:
  kind: redis
  redis_addr: cache:6379
  redis_db: 2
  ttl: 1h
http:
  addr: ":9090"
metrics:
  enabled: false
`)

	cfg, err := LoadWithEnv(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "team.conf", cfg.Document)
	assert.Equal(t, "UvA", cfg.Model)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, ".formation/documents", cfg.Store.Dir, "unset keys keep defaults")
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "model: UvA\nstore:\n  kind: file\n")

	cfg, err := LoadWithEnv(path, []string{
		"FORMATION_MODEL=KNN",
		"FORMATION_LOG_LEVEL=debug",
		"FORMATION_STORE_KIND=memory",
		"FORMATION_STORE_REDIS_DB=3",
		"FORMATION_METRICS_ENABLED=false",
		"FORMATION_STORE_FALLBACK_KEYS=a2V5MQ==,a2V5Mg==",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, "KNN", cfg.Model)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"a2V5MQ==", "a2V5Mg=="}, cfg.Store.FallbackKeys)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  []string
	}{
		{name: "bad yaml", body: "model: [unclosed"},
		{name: "unknown key", body: "modle: UvA\n"},
		{name: "unknown store", body: "store:\n  kind: s3\n"},
		{name: "negative ttl", body: "store:\n  ttl: -1s\n"},
		{name: "bad duration", body: "store:\n  ttl: soon\n"},
		{name: "bad env value", env: []string{"FORMATION_STORE_REDIS_DB=two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(writeConfig(t, tt.body), tt.env)
			assert.Error(t, err)
		})
	}
}
