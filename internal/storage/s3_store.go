package storage

import (
	"bytes"
	"context"
	"errors"

	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// S3API is the part of *s3.Client the store uses, so tests can fake it.
type S3API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps blobs in a single S3 bucket.
type S3Store struct {
	client S3API
	bucket string
	region string
	logger *zap.Logger
}

// NewS3Store creates a store writing to bucket.
func NewS3Store(client S3API, bucket, region string, logger *zap.Logger) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}
}

// EnsureContainer creates the bucket unless it already exists.
func (s *S3Store) EnsureContainer(ctx context.Context) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	_, err := s.client.CreateBucket(ctx, input)
	if err == nil {
		s.logger.Info("Created blob container", zap.String("bucket", s.bucket))
		return nil
	}
	if isAlreadyExists(err) {
		return nil
	}
	return appErrors.NewPersistenceFailure("failed to ensure blob container "+s.bucket, err)
}

// Put uploads data under name, overwriting any previous object.
func (s *S3Store) Put(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return appErrors.NewPersistenceFailure("failed to upload blob "+name, err)
	}
	return nil
}

// isAlreadyExists recognises both the typed S3 errors and the bare error
// codes S3-compatible servers return.
func isAlreadyExists(err error) bool {
	var owned *s3types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}
	var exists *s3types.BucketAlreadyExists
	if errors.As(err, &exists) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return true
		}
	}
	return false
}
