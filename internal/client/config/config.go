// Package config loads runtime configuration for the authctl operator CLI.
//
// Sources and precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/--config or $BOOKINGGATE_CONFIG.
//  3. Command-line flags, bound by the cli package on top of the result.
//
// JSON schema:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "token_file": "/home/me/.config/bookinggate/token",
//	  "request_timeout": "10s"
//	}
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the bookinggate gRPC endpoint.
//   - TokenFile: where the identity token from `login` is kept between runs.
//   - RequestTimeout: deadline applied to every RPC.
type Config struct {
	ServerEndpointAddr string
	TokenFile          string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".bookinggate-token"
	}
	return filepath.Join(dir, "bookinggate", "token")
}

// LoadConfig applies defaults and then the optional JSON file. Flags are
// layered on by the caller.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}
