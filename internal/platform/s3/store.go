// Package s3 stores preflight snapshots in an S3 bucket so the template
// stage and later audits can retrieve the exact settings a deployment was
// gated on.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/PowerPress/npk/internal/preflight"
)

// snapshotPrefix is where snapshot documents live inside the bucket.
const snapshotPrefix = "preflight/"

// API is the subset of the S3 client the store uses.
type API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store uploads and retrieves snapshot documents.
type Store struct {
	api    API
	bucket string
	now    func() time.Time
}

// NewStore creates a snapshot store backed by the given S3 API and bucket.
func NewStore(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket, now: time.Now}
}

// NewStoreFromConfig creates a snapshot store with a real S3 client.
func NewStoreFromConfig(cfg aws.Config, bucket string) *Store {
	return NewStore(s3.NewFromConfig(cfg), bucket)
}

// EnsureBucket creates the snapshot bucket. A bucket that already exists and
// is owned by us is not an error.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.api.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// PutSnapshot uploads a snapshot document and returns its object key.
func (s *Store) PutSnapshot(ctx context.Context, snapshot *preflight.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s.json", snapshotPrefix, s.now().UTC().Format("20060102T150405Z"))
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put snapshot %s in bucket %s: %w", key, s.bucket, err)
	}
	return key, nil
}

// GetSnapshot downloads and decodes a previously stored snapshot.
func (s *Store) GetSnapshot(ctx context.Context, key string) (*preflight.Snapshot, error) {
	result, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s from bucket %s: %w", key, s.bucket, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	var snapshot preflight.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}
	return &snapshot, nil
}

// ListSnapshots returns the keys of all stored snapshots, oldest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]string, error) {
	result, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(snapshotPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots in bucket %s: %w", s.bucket, err)
	}

	var keys []string
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists
// and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
	}

	return false
}
