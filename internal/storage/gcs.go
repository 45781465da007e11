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

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSProber probes a Google Cloud Storage bucket by reading its attributes
type GCSProber struct {
	client *storage.Client
	attrs  func(ctx context.Context, bucket string) (*storage.BucketAttrs, error)
	bucket string
}

// NewGCSProber creates a prober authenticated with the service account key
// of target.
func NewGCSProber(ctx context.Context, target BucketTarget) (*GCSProber, error) {
	if target.Bucket == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}
	if len(target.ServiceAccountJSON) == 0 {
		return nil, fmt.Errorf("GCS service account key is required")
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(target.ServiceAccountJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSProber{
		client: client,
		attrs: func(ctx context.Context, bucket string) (*storage.BucketAttrs, error) {
			return client.Bucket(bucket).Attrs(ctx)
		},
		bucket: target.Bucket,
	}, nil
}

// Probe reads the bucket attributes
func (p *GCSProber) Probe(ctx context.Context) error {
	_, err := p.attrs(ctx, p.bucket)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: gcs bucket %s", ErrBucketNotFound, p.bucket)
	}
	return fmt.Errorf("failed to get GCS bucket %s: %w", p.bucket, err)
}

// Close closes the GCS client
func (p *GCSProber) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
