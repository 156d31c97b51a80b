package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/crmclient/internal/flagx"
	"github.com/dmitrijs2005/crmclient/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only non-empty
// values override the current Config.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	AuthScheme     string         `json:"auth_scheme"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	Store          string         `json:"store"`
	StoreDSN       string         `json:"store_dsn"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPrefix    string         `json:"redis_prefix"`
	LogLevel       string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.AuthScheme, jc.AuthScheme)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
