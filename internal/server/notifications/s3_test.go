package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func withFakeS3(t *testing.T, fp *fakePutter) *s3.Options {
	t.Helper()
	opts := &s3.Options{}
	orig := newS3ClientFromConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		for _, fn := range optFns {
			fn(opts)
		}
		return fp
	}
	t.Cleanup(func() { newS3ClientFromConfig = orig })
	return opts
}

func TestNewS3Dispatcher_AppliesEndpoint(t *testing.T) {
	fp := &fakePutter{}
	opts := withFakeS3(t, fp)

	d, err := NewS3Dispatcher(context.Background(), S3Config{
		Region:       "us-east-1",
		RootUser:     "minio",
		RootPassword: "minio123",
		Bucket:       "outbox",
		BaseEndpoint: "http://localhost:9000",
	}, logging.Nop{})
	require.NoError(t, err)
	require.NotNil(t, d)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Dispatcher_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := NewS3Dispatcher(context.Background(), S3Config{}, logging.Nop{})
	assert.ErrorContains(t, err, "no creds")
}

func TestS3Dispatcher_Enqueue(t *testing.T) {
	fp := &fakePutter{}
	d := &S3Dispatcher{
		client: fp,
		bucket: "outbox",
		now:    func() time.Time { return time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC) },
		logger: logging.Nop{},
	}

	require.NoError(t, d.Enqueue(context.Background(), "u-1", resetPayload()))

	require.NotNil(t, fp.in)
	assert.Equal(t, "outbox", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "application/json", aws.ToString(fp.in.ContentType))
	assert.Regexp(t, regexp.MustCompile(`^outbox/2026/03/07/[0-9A-Z]{26}-password_reset\.json$`), aws.ToString(fp.in.Key))

	var m Message
	require.NoError(t, json.Unmarshal(fp.body, &m))
	assert.Equal(t, "u-1", m.RecipientID)
	assert.Equal(t, resetPayload(), m.Payload)
}

func TestS3Dispatcher_PutError(t *testing.T) {
	d := &S3Dispatcher{client: &fakePutter{err: errors.New("403")}, bucket: "b", now: time.Now, logger: logging.Nop{}}

	err := d.Enqueue(context.Background(), "u-1", resetPayload())
	assert.ErrorContains(t, err, "put outbox object")
}
