// Package config handles configuration for the bookinggate server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Notification drivers understood by NotificationDriver.
const (
	NotificationDriverLog   = "log"
	NotificationDriverAsynq = "asynq"
	NotificationDriverS3    = "s3"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - MetricsAddr: bind address for the Prometheus /metrics listener; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing all tokens (HS256). Do not use test defaults in prod.
//   - IdentityTokenValidityDuration / ResetTokenValidityDuration / SetTokenValidityDuration: token lifetimes.
//   - FrontendBaseURL: prefix for reset and set-password links sent by email.
//   - NotificationDriver: "log", "asynq" (Redis queue) or "s3" (object outbox).
//   - RedisAddr: Redis address used by the asynq driver.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: outbox storage settings.
//   - LogLevel: debug, info, warn or error.
//   - AdminEmail / AdminPassword: when both are set, a SUPER_ADMIN with that
//     email is created at startup unless the email is already taken.
type Config struct {
	EndpointAddrGRPC              string
	MetricsAddr                   string
	DatabaseDSN                   string
	SecretKey                     string
	IdentityTokenValidityDuration time.Duration
	ResetTokenValidityDuration    time.Duration
	SetTokenValidityDuration      time.Duration
	FrontendBaseURL               string
	NotificationDriver            string
	RedisAddr                     string
	S3RootUser                    string
	S3RootPassword                string
	S3Bucket                      string
	S3Region                      string
	S3BaseEndpoint                string
	LogLevel                      string
	AdminEmail                    string
	AdminPassword                 string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ":9090"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.IdentityTokenValidityDuration = 24 * time.Hour
	c.ResetTokenValidityDuration = 1 * time.Hour
	c.SetTokenValidityDuration = 72 * time.Hour
	c.FrontendBaseURL = "http://localhost:3000"
	c.NotificationDriver = NotificationDriverLog
	c.RedisAddr = "127.0.0.1:6379"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "notifications"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
