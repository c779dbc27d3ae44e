// Package media stores profile images in an S3-compatible bucket and hands
// back their public URLs.
package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/Jung-GunSong/friender-backend/internal/common"
	"github.com/Jung-GunSong/friender-backend/internal/logging"
	sc "github.com/Jung-GunSong/friender-backend/internal/server/config"
)

// ObjectPutter is the part of *s3.Client the store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newKey = func() string {
		return uuid.NewString()
	}
)

// S3Store uploads objects with public-read access under random keys.
type S3Store struct {
	client     ObjectPutter
	bucket     string
	publicHost string
	timeout    time.Duration
	logger     logging.Logger
}

// NewS3Store builds an AWS S3 client from cfg. Static credentials are used
// when S3RootUser is set, otherwise the default AWS credential chain applies.
// A non-empty S3BaseEndpoint switches to path-style addressing for
// S3-compatible services.
func NewS3Store(ctx context.Context, cfg *sc.Config, logger logging.Logger) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.S3Region)}
	if cfg.S3RootUser != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3RootUser, cfg.S3RootPassword, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithClient(client, cfg, logger), nil
}

// NewS3StoreWithClient wraps an existing client.
func NewS3StoreWithClient(client ObjectPutter, cfg *sc.Config, logger logging.Logger) *S3Store {
	return &S3Store{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicHost: cfg.PublicHost(),
		timeout:    cfg.UploadTimeout,
		logger:     logger.With("module", "media"),
	}
}

// Upload stores body under a fresh random key and returns its public URL.
// Every failure, including a cancelled or timed out context, is reported as
// common.ErrUploadFailed. Nothing is retried.
func (s *S3Store) Upload(ctx context.Context, body []byte, contentType string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	key := newKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		s.logger.Error(ctx, "upload failed", "bucket", s.bucket, "key", key, "error", err)
		return "", common.ErrUploadFailed
	}

	return s.URL(key), nil
}

// URL returns the public URL of key.
func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.publicHost, key)
}
