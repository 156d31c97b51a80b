// Package config loads runtime configuration for the CRM client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional dotenv file (-e/-env, or ./.env when present), then
//     process environment variables with the CRM_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the CRM API
//	-s string   credential store backend: sqlite | redis | memory
//	-d string   SQLite database path
//	-r string   Redis address (host:port)
//	-t int      request timeout in seconds
//	-l string   log level: debug | info | warn | error
//
// # JSON schema
//
// Durations are either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://crm.example.com",
//	  "store": "sqlite",
//	  "store_dsn": "crmclient.db",
//	  "request_timeout": "10s"
//	}
package config
