package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const testConfigYAML = `
is_production: true
log_level: warn
server:
  host: 127.0.0.1
  port: "4000"
  request_timeout: 3s
storage:
  driver: boltdb
  boltdb:
    filepath: ./data/locadora.db
`

// TestLoadConfigFile ensures yaml settings are decoded.
func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		config, err := LoadConfigFile(filepath.Join(t.TempDir(), "none.yml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{}, config)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))
		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.True(t, config.IsProduction)
		assert.Equal(t, zapcore.WarnLevel, config.LogLevel)
		assert.Equal(t, "4000", config.Server.Port)
		assert.Equal(t, 3*time.Second, config.Server.RequestTimeout)
		assert.Equal(t, DriverBoltDB, config.Storage.Driver)
		assert.Equal(t, "./data/locadora.db", config.Storage.BoltDB.FilePath)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o644))
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})
}

// TestInitConfig ensures defaults are applied and drivers settings are checked.
func TestInitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := &Config{}
		require.NoError(t, InitConfig(config, "abc123", "v1.0.0", "2025-01-01"))
		assert.Equal(t, "abc123", config.GitCommit)
		assert.Equal(t, "v1.0.0", config.GitTag)
		assert.Equal(t, "3001", config.Server.Port)
		assert.Equal(t, DriverFile, config.Storage.Driver)
		assert.Equal(t, "./database/filmes.json", config.Storage.File.Path)
		assert.Equal(t, "movies", config.Storage.Redis.Key)
		assert.Equal(t, "http://localhost:3001", config.Client.BaseURL)
		assert.Equal(t, 15*time.Second, config.Server.RequestTimeout)
	})

	testCases := []struct {
		name   string
		config *Config
	}{
		{"unknown driver", &Config{Storage: StorageConfig{Driver: "mongo"}}},
		{"redis without address", &Config{Storage: StorageConfig{Driver: DriverRedis}}},
		{"boltdb without file", &Config{Storage: StorageConfig{Driver: DriverBoltDB}}},
		{"postgres without dsn", &Config{Storage: StorageConfig{Driver: DriverPostgres}}},
		{"rate limit without rps", &Config{RateLimit: RateLimitConfig{Enabled: true, Burst: 10}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, InitConfig(tc.config, "", "", ""))
		})
	}
}

// TestLoadAndInitConfigs ensures env file and environment override the yaml file.
func TestLoadAndInitConfigs(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	envFile := filepath.Join(dir, "config.env")
	require.NoError(t, os.WriteFile(configFile, []byte(testConfigYAML), 0o644))
	require.NoError(t, os.WriteFile(envFile, []byte("LOCA_CLIENT_TIMEOUT=3s\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOCA_CLIENT_TIMEOUT") })
	t.Setenv("LOCA_SERVER_PORT", "5000")
	t.Setenv("LOCA_STORAGE_DRIVER", DriverMemory)

	config, err := LoadAndInitConfigs(configFile, envFile, "", "v2", "")
	require.NoError(t, err)
	assert.Equal(t, "5000", config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, DriverMemory, config.Storage.Driver)
	assert.Equal(t, 3*time.Second, config.Client.Timeout)
	assert.Equal(t, "http://127.0.0.1:5000", config.Client.BaseURL)
	assert.Equal(t, "v2", config.GitTag)

	t.Run("missing env file", func(t *testing.T) {
		_, err := LoadAndInitConfigs(configFile, filepath.Join(dir, "none.env"), "", "", "")
		assert.NoError(t, err)
	})
}
