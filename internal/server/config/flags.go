package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-s", "-t", "-r", "-w", "-f", "-n", "-q", "-u", "-p", "-b", "-g", "-e", "-l", "-admin-email", "-admin-password"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (empty disables)
//	-d string   PostgreSQL DSN (empty uses the in-memory store)
//	-s string   token HMAC secret key
//	-t int      identity token validity, minutes
//	-r int      password-reset token validity, minutes
//	-w int      password-set token validity, minutes
//	-f string   frontend base URL for emailed links
//	-n string   notification driver: log, asynq, s3
//	-q string   Redis address for the asynq driver
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level
//	-admin-email string     bootstrap SUPER_ADMIN email
//	-admin-password string  bootstrap SUPER_ADMIN password
//
// Duration flags are whole minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to expose metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	identity := fs.Int("t", int(config.IdentityTokenValidityDuration.Minutes()), "identity token validity (in minutes)")
	reset := fs.Int("r", int(config.ResetTokenValidityDuration.Minutes()), "password reset token validity (in minutes)")
	set := fs.Int("w", int(config.SetTokenValidityDuration.Minutes()), "password set token validity (in minutes)")

	fs.StringVar(&config.FrontendBaseURL, "f", config.FrontendBaseURL, "frontend base URL")
	fs.StringVar(&config.NotificationDriver, "n", config.NotificationDriver, "notification driver (log, asynq, s3)")
	fs.StringVar(&config.RedisAddr, "q", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "bootstrap super admin email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "bootstrap super admin password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.IdentityTokenValidityDuration = time.Duration(*identity) * time.Minute
	config.ResetTokenValidityDuration = time.Duration(*reset) * time.Minute
	config.SetTokenValidityDuration = time.Duration(*set) * time.Minute
}
