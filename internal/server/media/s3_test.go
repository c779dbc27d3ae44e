package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jung-GunSong/friender-backend/internal/common"
	"github.com/Jung-GunSong/friender-backend/internal/logging"
	sc "github.com/Jung-GunSong/friender-backend/internal/server/config"
)

type fakePutter struct {
	inputs [][]byte
	calls  []*s3.PutObjectInput
	err    error
	block  bool
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls = append(f.calls, in)
	b, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, b)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func testConfig() *sc.Config {
	return &sc.Config{
		S3Bucket:      "friender",
		S3Region:      "us-west-1",
		UploadTimeout: time.Second,
	}
}

func TestUpload_Success(t *testing.T) {
	fp := &fakePutter{}
	store := NewS3StoreWithClient(fp, testConfig(), logging.Nop{})

	url, err := store.Upload(context.Background(), []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, fp.calls, 1)
	in := fp.calls[0]
	assert.Equal(t, "friender", aws.ToString(in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, in.ACL)
	assert.Equal(t, int64(10), aws.ToInt64(in.ContentLength))
	assert.Equal(t, []byte("jpeg-bytes"), fp.inputs[0])

	key := aws.ToString(in.Key)
	assert.Len(t, key, 36)
	assert.Equal(t, "https://friender.s3.us-west-1.amazonaws.com/"+key, url)
}

func TestUpload_FreshKeyEachTime(t *testing.T) {
	fp := &fakePutter{}
	store := NewS3StoreWithClient(fp, testConfig(), logging.Nop{})

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		url, err := store.Upload(context.Background(), []byte{1}, "image/png")
		require.NoError(t, err)
		require.False(t, seen[url], "duplicate url %s", url)
		seen[url] = true
	}
}

func TestUpload_ErrorIsUploadFailed(t *testing.T) {
	fp := &fakePutter{err: errors.New("AccessDenied")}
	store := NewS3StoreWithClient(fp, testConfig(), logging.Nop{})

	url, err := store.Upload(context.Background(), []byte("x"), "image/png")
	assert.Empty(t, url)
	assert.ErrorIs(t, err, common.ErrUploadFailed)
	assert.NotContains(t, err.Error(), "AccessDenied")
	assert.Len(t, fp.calls, 1, "must not retry")
}

func TestUpload_TimeoutIsUploadFailed(t *testing.T) {
	cfg := testConfig()
	cfg.UploadTimeout = 10 * time.Millisecond
	fp := &fakePutter{block: true}
	store := NewS3StoreWithClient(fp, cfg, logging.Nop{})

	_, err := store.Upload(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, common.ErrUploadFailed)
}

func TestUpload_CancelledContextIsUploadFailed(t *testing.T) {
	fp := &fakePutter{block: true}
	store := NewS3StoreWithClient(fp, testConfig(), logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, []byte("x"), "image/png")
	assert.ErrorIs(t, err, common.ErrUploadFailed)
}

func TestURL_CustomPublicHost(t *testing.T) {
	cfg := testConfig()
	cfg.S3PublicHost = "cdn.example.com"
	store := NewS3StoreWithClient(&fakePutter{}, cfg, logging.Nop{})

	assert.Equal(t, "https://friender.cdn.example.com/abc", store.URL("abc"))
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{}, nil
	}

	var opts s3.Options
	fp := &fakePutter{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fp
	}

	cfg := testConfig()
	cfg.S3Region = "eu-central-1"
	cfg.S3RootUser = "minioadmin"
	cfg.S3RootPassword = "minioadmin"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"

	store, err := NewS3Store(context.Background(), cfg, logging.Nop{})
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.True(t, strings.HasPrefix(store.URL("k"), "https://friender.s3.eu-central-1.amazonaws.com/"))
}

func TestNewS3Store_NoEndpointUsesAWSDefaults(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Nil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &fakePutter{}
	}

	_, err := NewS3Store(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestNewS3Store_LoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	_, err := NewS3Store(context.Background(), testConfig(), logging.Nop{})
	require.ErrorContains(t, err, "no profile")
}
