package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_PORT", "STORE_DRIVER", "MONGO_DATABASE", "JWT_SECRET",
		"CACHE_TTL", "TOKEN_TTL", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, "feed", cfg.MongoDatabase)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Zero(t, cfg.TokenTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server_port: "4000"
store_driver: mysql
jwt_secret: from-file
cache_ttl: 1m
token_ttl: 2h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, StoreMySQL, cfg.StoreDriver)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing config file",
			env:  map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"},
		},
		{
			name: "unknown store driver",
			env:  map[string]string{"STORE_DRIVER": "postgres", "JWT_SECRET": "s3cret"},
		},
		{
			name: "missing jwt secret",
			env:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestGetEnvDuration_IgnoresGarbage(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	assert.Equal(t, 5*time.Second, getEnvDuration("CACHE_TTL", 5*time.Second))
}
