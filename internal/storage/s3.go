package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Provider stores objects in a single S3 bucket.
type S3Provider struct {
	client *s3.Client
	bucket string
}

func NewS3Provider(ctx context.Context, bucket, region string) (*S3Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Provider{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (s *S3Provider) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *S3Provider) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// FromConfig selects the storage backend by name.
func FromConfig(ctx context.Context, backend, uploadDir, bucket, region string) (Provider, error) {
	if backend == "s3" {
		if bucket == "" {
			return nil, fmt.Errorf("s3 storage selected but S3_BUCKET is empty")
		}
		return NewS3Provider(ctx, bucket, region)
	}
	return NewLocalProvider(uploadDir)
}
