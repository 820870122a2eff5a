package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/flagx"
	"github.com/dmitrijs2005/bookinggate/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "15m" style
// strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC              string         `json:"endpoint_addr_grpc"`
	MetricsAddr                   string         `json:"metrics_addr"`
	DatabaseDSN                   string         `json:"database_dsn"`
	SecretKey                     string         `json:"secret_key"`
	IdentityTokenValidityDuration timex.Duration `json:"identity_token_validity_duration"`
	ResetTokenValidityDuration    timex.Duration `json:"reset_token_validity_duration"`
	SetTokenValidityDuration      timex.Duration `json:"set_token_validity_duration"`
	FrontendBaseURL               string         `json:"frontend_base_url"`
	NotificationDriver            string         `json:"notification_driver"`
	RedisAddr                     string         `json:"redis_addr"`
	S3RootUser                    string         `json:"s3_root_user"`
	S3RootPassword                string         `json:"s3_root_password"`
	S3Bucket                      string         `json:"s3_bucket"`
	S3Region                      string         `json:"s3_region"`
	S3BaseEndpoint                string         `json:"s3_base_endpoint"`
	LogLevel                      string         `json:"log_level"`
	AdminEmail                    string         `json:"admin_email"`
	AdminPassword                 string         `json:"admin_password"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $BOOKINGGATE_CONFIG). Keys that are absent or empty leave the current
// value alone. An unreadable file or invalid JSON panics: the server cannot
// start with a half-applied configuration.
func parseJson(config *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.IdentityTokenValidityDuration, c.IdentityTokenValidityDuration)
	setDuration(&config.ResetTokenValidityDuration, c.ResetTokenValidityDuration)
	setDuration(&config.SetTokenValidityDuration, c.SetTokenValidityDuration)
	setString(&config.FrontendBaseURL, c.FrontendBaseURL)
	setString(&config.NotificationDriver, c.NotificationDriver)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
