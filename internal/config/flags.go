package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authmaint/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-a string   admin HTTP bind address (e.g., ":8086")
//	-s string   JWT HMAC secret key
//	-t int      admin token validity, minutes
//	-n int      delete batch size
//	-y          assume yes: skip the destructive-task confirmation
//	-l string   log file path (enables rotated file logging)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 archive bucket (empty disables archival)
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the subcommand word and the
// -c/-config flags handled elsewhere.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-s", "-t", "-n", "-y", "-l", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AdminAddr, "a", config.AdminAddr, "admin HTTP address and port")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityMinutes := fs.Int("t", 0, "token validity (in minutes)")

	fs.IntVar(&config.BatchSize, "n", config.BatchSize, "delete batch size")
	fs.BoolVar(&config.AssumeYes, "y", config.AssumeYes, "assume yes, do not ask for confirmation")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file path")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 archive bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t overrides the merged duration only when it was passed on the
	// command line; sub-minute values from the env or JSON layers must
	// survive a flagless run.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidityMinutes) * time.Minute
		}
	})
}
