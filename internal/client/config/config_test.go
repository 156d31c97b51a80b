package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.APIBaseURL)
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "crmclient.db", c.StoreDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "Token", c.AuthScheme)
}

func TestLoad_NoSources_UsesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://crm.example", "-s", "redis", "-r", "cache:6379", "-t", "3", "-l", "debug"},
			mutate: func(c *Config) {
				c.APIBaseURL = "https://crm.example"
				c.Store = StoreRedis
				c.RedisAddr = "cache:6379"
				c.RequestTimeout = 3 * time.Second
				c.LogLevel = "debug"
			},
		},
		{
			name:   "foreign flags are ignored",
			args:   []string{"-c", "file.json", "-d", "other.db"},
			mutate: func(c *Config) { c.StoreDSN = "other.db" },
		},
		{name: "non numeric timeout", args: []string{"-t", "abc"}, wantErr: true},
		{name: "zero timeout", args: []string{"-t", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFlags_TimeoutUntouchedWhenAbsent(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond

	require.NoError(t, parseFlags(cfg, []string{"-l", "warn"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	t.Run("overlays non-empty values", func(t *testing.T) {
		path := writeFile(t, "cfg.json", `{"api_base_url":"https://json.example","request_timeout":"30s","store":"memory"}`)

		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "https://json.example", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, StoreMemory, cfg.Store)
		assert.Equal(t, "crmclient.db", cfg.StoreDSN)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, nil))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ not json`)
		require.Error(t, parseJSON(defaults(), []string{"-c", path}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CRM_API_URL", "https://env.example")
	t.Setenv("CRM_REQUEST_TIMEOUT", "4s")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, nil))

	assert.Equal(t, "https://env.example", cfg.APIBaseURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, StoreSQLite, cfg.Store)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := writeFile(t, "test.env", "CRM_STORE=redis\nCRM_REDIS_ADDR=env-redis:6379\n")
	t.Setenv("CRM_STORE", "")
	os.Unsetenv("CRM_STORE")
	t.Setenv("CRM_REDIS_ADDR", "")
	os.Unsetenv("CRM_REDIS_ADDR")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, []string{"-e", path}))

	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "env-redis:6379", cfg.RedisAddr)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"api_base_url":"https://json.example","log_level":"warn"}`)
	t.Setenv("CRM_API_URL", "https://env.example")

	cfg, err := Load([]string{"-c", path, "-a", "https://flag.example"})
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}
