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

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/types"
)

// Prober checks that the warehouse bucket exists and is reachable with the
// resolved credentials.
type Prober = types.Prober

// BucketTarget is the resolved object storage location
type BucketTarget = types.BucketTarget

// ErrBucketNotFound means the endpoint answered but the bucket or container
// does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// IsBucketNotFound checks if err is or wraps ErrBucketNotFound
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// NewBucketProber picks the prober for target.Kind.
func NewBucketProber(ctx context.Context, target BucketTarget) (Prober, error) {
	var (
		p   Prober
		err error
	)
	switch hivev1alpha1.ObjectStorageKind(target.Kind) {
	case hivev1alpha1.ObjectStorageS3:
		p, err = NewS3Prober(ctx, target)
	case hivev1alpha1.ObjectStorageGCS:
		p, err = NewGCSProber(ctx, target)
	case hivev1alpha1.ObjectStorageAzure:
		p, err = NewAzureProber(target)
	default:
		err = fmt.Errorf("unsupported object storage kind: %q", target.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
