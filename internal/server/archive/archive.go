// Package archive keeps copies of overwritten vault blobs in S3-compatible
// object storage.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/google/uuid"
)

type Archiver interface {
	Archive(ctx context.Context, blob string) (string, error)
}

type Config struct {
	Region       string
	RootUser     string
	RootPassword string
	Bucket       string
	BaseEndpoint string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client putObjectAPI
	bucket string
	logger logging.Logger
	now    func() time.Time
}

func NewS3Archiver(ctx context.Context, c Config, l logging.Logger) (*S3Archiver, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.RootUser,
			c.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3Archiver(client, c.Bucket, l), nil
}

func newS3Archiver(client putObjectAPI, bucket string, l logging.Logger) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		logger: l.With("module", "archive"),
		now:    time.Now,
	}
}

// ObjectKey returns a fresh key of the form vault/YYYY/MM/DD/<uuid>.blob.
func ObjectKey(t time.Time) string {
	return fmt.Sprintf("vault/%04d/%02d/%02d/%v.blob", t.Year(), t.Month(), t.Day(), uuid.New())
}

// Archive uploads blob and returns the object key it was stored under.
func (a *S3Archiver) Archive(ctx context.Context, blob string) (string, error) {
	key := ObjectKey(a.now().UTC())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(blob),
		ContentLength: aws.Int64(int64(len(blob))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	a.logger.Debug(ctx, "vault blob archived", "key", key, "bytes", len(blob))
	return key, nil
}

// Nop discards blobs. It is used when archiving is disabled.
type Nop struct{}

func (Nop) Archive(context.Context, string) (string, error) { return "", nil }
