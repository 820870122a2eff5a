package notifications

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/oklog/ulid/v2"
)

// S3Config locates the outbox bucket. It mirrors the S3 section of the
// server config.
type S3Config struct {
	Region       string
	RootUser     string
	RootPassword string
	Bucket       string
	BaseEndpoint string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Dispatcher writes each notification as a JSON object into an outbox
// bucket, for a mailer that polls it.
type S3Dispatcher struct {
	client objectPutter
	bucket string
	now    func() time.Time
	logger logging.Logger
}

func NewS3Dispatcher(ctx context.Context, c S3Config, logger logging.Logger) (*S3Dispatcher, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.RootUser,
			c.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Dispatcher{
		client: client,
		bucket: c.Bucket,
		now:    time.Now,
		logger: logger.With("module", "notifications", "driver", "s3"),
	}, nil
}

// objectKey groups outbox objects by day; the ULID keeps them ordered by
// creation time within a day.
func (d *S3Dispatcher) objectKey(k Kind) string {
	t := d.now().UTC()
	return fmt.Sprintf("outbox/%d/%02d/%02d/%s-%s.json", t.Year(), t.Month(), t.Day(), ulid.Make(), k)
}

func (d *S3Dispatcher) Enqueue(ctx context.Context, recipientID string, p Payload) error {
	body, err := Message{RecipientID: recipientID, Payload: p}.encode()
	if err != nil {
		return err
	}

	key := d.objectKey(p.Kind)
	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put outbox object: %w", err)
	}

	d.logger.Debug(ctx, "notification stored", "key", key, "recipient_id", recipientID)
	return nil
}
