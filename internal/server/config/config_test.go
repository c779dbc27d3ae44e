package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":3001", c.EndpointAddr)
	assert.Equal(t, 12, c.BcryptWorkFactor)
	assert.Equal(t, "friender", c.S3Bucket)
	assert.Equal(t, "us-west-1", c.S3Region)
	assert.Equal(t, DefaultPlaceholderPhotoURL, c.PlaceholderPhotoURL)
	assert.Equal(t, 30*time.Second, c.UploadTimeout)
	assert.Equal(t, int64(10<<20), c.MaxUploadBytes)
}

func TestPublicHost(t *testing.T) {
	c := defaults()
	assert.Equal(t, "s3.us-west-1.amazonaws.com", c.PublicHost())

	c.S3PublicHost = "cdn.example.com"
	assert.Equal(t, "cdn.example.com", c.PublicHost())
}

func TestParseFlags(t *testing.T) {
	c := defaults()
	args := []string{
		"-a", "127.0.0.1:9090", "-d", "db", "-w", "4", "-u", "user", "-p", "password",
		"-b", "bucket", "-g", "eu-central-1", "-e", "http://endpoint", "-h", "cdn",
		"-f", "http://placeholder", "-t", "5s", "-m", "1024", "-l", "debug",
		"-c", "ignored.json",
	}

	require.NoError(t, parseFlags(c, args))

	want := &Config{
		EndpointAddr:        "127.0.0.1:9090",
		DatabaseDSN:         "db",
		LogLevel:            "debug",
		BcryptWorkFactor:    4,
		S3RootUser:          "user",
		S3RootPassword:      "password",
		S3Bucket:            "bucket",
		S3Region:            "eu-central-1",
		S3BaseEndpoint:      "http://endpoint",
		S3PublicHost:        "cdn",
		PlaceholderPhotoURL: "http://placeholder",
		UploadTimeout:       5 * time.Second,
		MaxUploadBytes:      1024,
		ShutdownTimeout:     10 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValue(t *testing.T) {
	c := defaults()
	require.Error(t, parseFlags(c, []string{"-w", "many"}))
}

func TestParseJSON(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr":      "www.example:9000",
			"bcrypt_work_factor": 5,
			"s3_bucket":          "photos",
			"upload_timeout":     "1m",
			"shutdown_timeout":   int64(2 * time.Second),
		})

		c := defaults()
		require.NoError(t, parseJSON(c, []string{"-c", path}))

		assert.Equal(t, "www.example:9000", c.EndpointAddr)
		assert.Equal(t, 5, c.BcryptWorkFactor)
		assert.Equal(t, "photos", c.S3Bucket)
		assert.Equal(t, time.Minute, c.UploadTimeout)
		assert.Equal(t, 2*time.Second, c.ShutdownTimeout)
		assert.Equal(t, "us-west-1", c.S3Region)
	})

	t.Run("no flag leaves config unchanged", func(t *testing.T) {
		c := defaults()
		require.NoError(t, parseJSON(c, nil))
		assert.Empty(t, cmp.Diff(defaults(), c))
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJSON(defaults(), []string{"-config", bad}))
	})

	t.Run("missing file fails", func(t *testing.T) {
		require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"s3_bucket": "from-json",
		"s3_region": "from-json",
		"log_level": "from-json",
	})
	t.Setenv("BUCKET_REGION", "from-env")
	t.Setenv("LOG_LEVEL", "from-env")

	c, err := Load([]string{"-c", path, "-l", "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "from-json", c.S3Bucket)
	assert.Equal(t, "from-env", c.S3Region)
	assert.Equal(t, "from-flag", c.LogLevel)
	assert.Equal(t, ":3001", c.EndpointAddr)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("BCRYPT_WORK_FACTOR", "lots")

	_, err := Load(nil)
	require.Error(t, err)
}
