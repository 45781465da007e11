/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const defaultS3Region = "us-east-1"

// headBucketAPI is the part of the S3 client the prober needs
type headBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Prober probes an S3-compatible bucket with HeadBucket
type S3Prober struct {
	client headBucketAPI
	bucket string
}

// NewS3Prober creates a prober for target. Without an access key the
// requests are sent unsigned.
func NewS3Prober(ctx context.Context, target BucketTarget) (*S3Prober, error) {
	if target.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	region := target.Region
	if region == "" {
		region = defaultS3Region
	}
	var provider aws.CredentialsProvider = aws.AnonymousCredentials{}
	if target.AccessKey != "" {
		provider = credentials.NewStaticCredentialsProvider(target.AccessKey, target.SecretKey, "")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(provider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if target.Endpoint != "" {
			o.BaseEndpoint = aws.String(target.Endpoint)
		}
		o.UsePathStyle = target.PathStyle
	})

	return &S3Prober{client: client, bucket: target.Bucket}, nil
}

// Probe issues HeadBucket
func (p *S3Prober) Probe(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.bucket)})
	if err == nil {
		return nil
	}
	if isS3NotFound(err) {
		return fmt.Errorf("%w: s3 bucket %s", ErrBucketNotFound, p.bucket)
	}
	return fmt.Errorf("failed to head S3 bucket %s: %w", p.bucket, err)
}

// Close is a no-op. The S3 client holds no connections of its own.
func (p *S3Prober) Close() error {
	return nil
}

func isS3NotFound(err error) bool {
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
