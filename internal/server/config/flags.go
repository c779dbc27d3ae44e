package config

import (
	"flag"
	"io"

	"github.com/Jung-GunSong/friender-backend/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-l", "-w", "-u", "-p", "-b", "-g", "-e", "-h", "-f", "-t", "-m"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":3001")
//	-d string     PostgreSQL DSN
//	-l string     log level
//	-w int        bcrypt work factor
//	-u string     S3 access key
//	-p string     S3 secret key
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-h string     public host for photo URLs
//	-f string     placeholder photo URL
//	-t duration   upload timeout (e.g., "30s")
//	-m int        max upload size in bytes
//
// Only the flags above are looked at; args is filtered first so that the
// -c/-config flag handled by parseJSON does not cause an error here.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.BcryptWorkFactor, "w", config.BcryptWorkFactor, "bcrypt work factor")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicHost, "h", config.S3PublicHost, "public host for photo URLs")
	fs.StringVar(&config.PlaceholderPhotoURL, "f", config.PlaceholderPhotoURL, "placeholder photo URL")
	fs.DurationVar(&config.UploadTimeout, "t", config.UploadTimeout, "upload timeout")
	fs.Int64Var(&config.MaxUploadBytes, "m", config.MaxUploadBytes, "max upload size in bytes")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
