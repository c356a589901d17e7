package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://www.instagram.com", cfg.Instagram.BaseURL)
	assert.Equal(t, "https://i.instagram.com", cfg.Instagram.APIBaseURL)
	assert.Equal(t, StoreFile, cfg.Session.Store)
	assert.True(t, cfg.Paging.Delayed)
	assert.Equal(t, time.Second, cfg.Paging.DelayMin)
	assert.Equal(t, 3*time.Second, cfg.Paging.DelayMax)
	assert.Equal(t, 30*time.Minute, cfg.Paging.TimeLimit)
	assert.Equal(t, 12, cfg.Paging.MediaRequestCount)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGCLIENT_USERNAME", "kevin")
	t.Setenv("IGCLIENT_PASSWORD", "hunter2")
	t.Setenv("IGCLIENT_SESSION_STORE", "KEYRING")
	t.Setenv("IGCLIENT_PAGING_DELAY_MIN", "250ms")
	t.Setenv("IGCLIENT_PAGING_DELAY_MAX", "750ms")
	t.Setenv("IGCLIENT_FRESH_LOGIN", "true")
	t.Setenv("IGCLIENT_CACHE_SIZE", "64")
	t.Setenv("IGCLIENT_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "kevin", cfg.Instagram.Username)
	assert.Equal(t, "hunter2", cfg.Instagram.Password)
	assert.Equal(t, StoreKeyring, cfg.Session.Store)
	assert.Equal(t, 250*time.Millisecond, cfg.Paging.DelayMin)
	assert.Equal(t, 750*time.Millisecond, cfg.Paging.DelayMax)
	assert.True(t, cfg.Session.Fresh)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvReportsBadValues(t *testing.T) {
	t.Setenv("IGCLIENT_PAGING_TIME_LIMIT", "forever")
	t.Setenv("IGCLIENT_CACHE_SIZE", "lots")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "IGCLIENT_PAGING_TIME_LIMIT")
	assert.Contains(t, err.Error(), "IGCLIENT_CACHE_SIZE")
	assert.Equal(t, 30*time.Minute, cfg.Paging.TimeLimit)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
instagram:
  username: file_user
  base_url: http://localhost:8080
session:
  store: memory
paging:
  delayed: false
  time_limit: 5m
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "file_user", cfg.Instagram.Username)
	assert.Equal(t, "http://localhost:8080", cfg.Instagram.BaseURL)
	assert.Equal(t, "https://i.instagram.com", cfg.Instagram.APIBaseURL)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.False(t, cfg.Paging.Delayed)
	assert.Equal(t, 5*time.Minute, cfg.Paging.TimeLimit)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("instagram: [unterminated"), 0600))
	assert.Error(t, cfg.LoadFromFile(bad))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown store", func(c *Config) { c.Session.Store = "s3" }, "invalid session store"},
		{"file store without dir", func(c *Config) { c.Session.Directory = "" }, "session directory is required"},
		{"memory store without dir", func(c *Config) { c.Session.Store = StoreMemory; c.Session.Directory = "" }, ""},
		{"inverted delays", func(c *Config) { c.Paging.DelayMax = 0 }, "delay max must not be below"},
		{"zero budget", func(c *Config) { c.Paging.TimeLimit = 0 }, "time limit must be positive"},
		{"page size too large", func(c *Config) { c.Paging.MediaRequestCount = 51 }, "between 1 and 50"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"missing base url", func(c *Config) { c.Instagram.BaseURL = "" }, "base URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveOmitsPassword(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Instagram.Username = "kevin"
	cfg.Instagram.Password = "hunter2"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kevin")
	assert.NotContains(t, string(data), "hunter2")
	assert.Equal(t, "hunter2", cfg.Instagram.Password)

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "kevin", loaded.Instagram.Username)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instagram:\n  username: from_file\nlogging:\n  level: warn\n"), 0600))

	t.Setenv("IGCLIENT_LOG_LEVEL", "error")

	cfg, err := Load(path, map[string]interface{}{
		"username": "from_flag",
		"no-delay": true,
	})
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Instagram.Username)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.False(t, cfg.Paging.Delayed)
}

func TestLoadFailsValidation(t *testing.T) {
	t.Setenv("IGCLIENT_SESSION_STORE", "carrier-pigeon")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session store")
}
