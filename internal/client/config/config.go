package config

import (
	"os"
	"time"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the CRM client.
type Config struct {
	APIBaseURL     string        `env:"CRM_API_URL"`
	AuthScheme     string        `env:"CRM_AUTH_SCHEME"`
	RequestTimeout time.Duration `env:"CRM_REQUEST_TIMEOUT"`

	Store       string `env:"CRM_STORE"`
	StoreDSN    string `env:"CRM_STORE_DSN"`
	RedisAddr   string `env:"CRM_REDIS_ADDR"`
	RedisPrefix string `env:"CRM_REDIS_PREFIX"`

	LogLevel string `env:"CRM_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.AuthScheme = "Token"
	c.RequestTimeout = 10 * time.Second
	c.Store = StoreSQLite
	c.StoreDSN = "crmclient.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "crmclient:"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the JSON file, the environment and
// finally args (normally os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load applied to the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
