package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/authmaint/internal/config"
	"github.com/dmitrijs2005/authmaint/internal/metrics"
)

// s3API is the subset of the S3 client used by the sink.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink writes one JSON-lines object per deletion batch to an S3-compatible
// bucket under authmaint/<task>/<name>.jsonl.
type S3Sink struct {
	client s3API
	bucket string
}

// NewS3Sink builds an S3-backed sink from the archive settings in cfg.
func NewS3Sink(ctx context.Context, cfg *config.Config) (*S3Sink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Sink{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3Sink) Store(ctx context.Context, task, name string, payload []byte) (string, error) {
	key := fmt.Sprintf("authmaint/%s/%s.jsonl", task, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", fmt.Errorf("archive upload: %w", err)
	}

	metrics.ArchivedObjectsTotal.Inc()

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
