package config

import (
	"encoding/json"
	"os"

	"github.com/Jung-GunSong/friender-backend/internal/flagx"
	"github.com/Jung-GunSong/friender-backend/internal/timex"
)

// JsonConfig mirrors Config for decoding JSON files. Durations accept both
// "30s" strings and integer nanoseconds. Absent keys leave the target
// Config untouched.
type JsonConfig struct {
	EndpointAddr        *string         `json:"endpoint_addr"`
	DatabaseDSN         *string         `json:"database_dsn"`
	LogLevel            *string         `json:"log_level"`
	BcryptWorkFactor    *int            `json:"bcrypt_work_factor"`
	S3RootUser          *string         `json:"s3_root_user"`
	S3RootPassword      *string         `json:"s3_root_password"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	S3PublicHost        *string         `json:"s3_public_host"`
	PlaceholderPhotoURL *string         `json:"placeholder_photo_url"`
	UploadTimeout       *timex.Duration `json:"upload_timeout"`
	MaxUploadBytes      *int64          `json:"max_upload_bytes"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
}

// parseJSON overlays values from the JSON file named by -c/-config in args.
// No flag means nothing to load.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicHost, c.S3PublicHost)
	setString(&config.PlaceholderPhotoURL, c.PlaceholderPhotoURL)

	if c.BcryptWorkFactor != nil {
		config.BcryptWorkFactor = *c.BcryptWorkFactor
	}
	if c.MaxUploadBytes != nil {
		config.MaxUploadBytes = *c.MaxUploadBytes
	}
	if c.UploadTimeout != nil {
		config.UploadTimeout = c.UploadTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
