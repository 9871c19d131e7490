package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3GetObjectAPI is the subset of the S3 client used for reads
type S3GetObjectAPI interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// S3ObjectStore implements ObjectStore on top of Amazon S3
type S3ObjectStore struct {
	client S3GetObjectAPI
}

// NewS3ObjectStore creates a new S3ObjectStore from an SDK client
func NewS3ObjectStore(client S3GetObjectAPI) *S3ObjectStore {
	return &S3ObjectStore{client: client}
}

// NewS3ObjectStoreFromConfig builds the S3 client from a loaded AWS config
func NewS3ObjectStoreFromConfig(cfg aws.Config) *S3ObjectStore {
	return NewS3ObjectStore(s3.NewFromConfig(cfg))
}

// GetObject implements ObjectStore.GetObject
func (s *S3ObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateLocation(bucket, key); err != nil {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, err)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, classifyS3Error(err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}

	return data, nil
}

// Close implements ObjectStore.Close
func (s *S3ObjectStore) Close() error {
	// The SDK client holds no resources that need releasing
	return nil
}

// classifyS3Error maps SDK errors onto the store's sentinels while keeping the original in the chain
func classifyS3Error(err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
		case "AccessDenied", "Forbidden", "AllAccessDisabled", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	return err
}
