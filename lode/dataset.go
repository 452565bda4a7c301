package lode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/justapithecus/lode/lode"
	lodes3 "github.com/justapithecus/lode/lode/s3"
)

// DefaultDataset is the dataset invocations are journaled to.
const DefaultDataset = "catalogi"

// Partition keys of the journal's Hive layout.
const (
	partitionOperation = "operation"
	partitionDay       = "day"
)

// NewDataset creates the journal dataset on the given store.
func NewDataset(dataset string, factory lode.StoreFactory) (lode.Dataset, error) {
	ds, err := lode.NewDataset(
		lode.DatasetID(dataset),
		factory,
		lode.WithHiveLayout(partitionOperation, partitionDay),
		lode.WithCodec(lode.NewJSONLCodec()),
	)
	if err != nil {
		return nil, WrapInitError(err, dataset)
	}
	return ds, nil
}

// S3Config holds configuration for S3 storage backend.
type S3Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string
	// Prefix is the key prefix within the bucket (optional).
	Prefix string
	// Region is the AWS region (optional, uses default chain if empty).
	Region string
	// Endpoint is a custom S3 endpoint URL for S3-compatible providers
	// (e.g. Cloudflare R2, MinIO). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing (bucket in path, not subdomain).
	UsePathStyle bool
}

// Validate checks that required S3 configuration is present.
func (c *S3Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("S3 bucket is required")
	}
	return nil
}

// ParseS3Path parses a path in format "bucket/prefix" or "bucket".
func ParseS3Path(path string) (bucket, prefix string) {
	parts := strings.SplitN(path, "/", 2)
	bucket = parts[0]
	if len(parts) > 1 {
		prefix = parts[1]
	}
	return bucket, prefix
}

// NewS3Factory builds a store factory backed by S3.
// Uses AWS SDK default credential chain (env vars, shared config, IAM role).
func NewS3Factory(ctx context.Context, s3cfg S3Config) (lode.StoreFactory, error) {
	if err := s3cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []func(*config.LoadOptions) error
	if s3cfg.Region != "" {
		opts = append(opts, config.WithRegion(s3cfg.Region))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if s3cfg.Endpoint != "" {
		endpoint := s3cfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	if s3cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	s3Client := s3.NewFromConfig(awsConfig, s3Opts...)

	return func() (lode.Store, error) {
		return lodes3.New(s3Client, lodes3.Config{
			Bucket: s3cfg.Bucket,
			Prefix: s3cfg.Prefix,
		})
	}, nil
}

// snapshotMatchesFilter checks if a snapshot's file paths match
// the given partition key=value filter.
func snapshotMatchesFilter(snap *lode.DatasetSnapshot, key, value string) bool {
	if value == "" {
		return true
	}
	for _, f := range snap.Manifest.Files {
		if matchesPartitionValue(f.Path, key, value) {
			return true
		}
	}
	return false
}

// matchesPartitionValue checks if a Hive-partitioned path contains an exact
// key=value segment, so operation=rating does not match operation=rating-x.
func matchesPartitionValue(path, key, value string) bool {
	segment := key + "=" + value
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
