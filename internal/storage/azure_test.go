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
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

type fakeContainer struct {
	err   error
	calls int
}

func (f *fakeContainer) GetProperties(context.Context, *container.GetPropertiesOptions) (container.GetPropertiesResponse, error) {
	f.calls++
	return container.GetPropertiesResponse{}, f.err
}

func TestNewAzureProber_Validation(t *testing.T) {
	tests := []struct {
		name    string
		target  BucketTarget
		wantErr string
	}{
		{name: "empty container", target: BucketTarget{Kind: "azure", Account: "lake"}, wantErr: "Azure container name is required"},
		{name: "empty account", target: BucketTarget{Kind: "azure", Container: "warehouse"}, wantErr: "Azure storage account is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAzureProber(tt.target)
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("NewAzureProber() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewAzureProber_InvalidKey(t *testing.T) {
	_, err := NewAzureProber(BucketTarget{Kind: "azure", Account: "lake", Container: "warehouse", AccountKey: "not base64!"})
	if err == nil {
		t.Error("Expected error for an account key that is not base64")
	}
}

func TestNewAzureProber(t *testing.T) {
	p, err := NewAzureProber(BucketTarget{Kind: "azure", Account: "lake", Container: "warehouse", AccountKey: "a2V5"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.client == nil {
		t.Error("Expected container client to be set")
	}
}

func TestAzureProber_Probe(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantErr      bool
		wantNotFound bool
	}{
		{name: "container exists"},
		{
			name:         "container missing",
			err:          &azcore.ResponseError{StatusCode: 404, ErrorCode: string(bloberror.ContainerNotFound)},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name:    "auth failure",
			err:     &azcore.ResponseError{StatusCode: 403, ErrorCode: string(bloberror.AuthenticationFailed)},
			wantErr: true,
		},
		{name: "network", err: errors.New("no such host"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeContainer{err: tt.err}
			p := &AzureProber{client: fake, account: "lake", container: "warehouse"}

			err := p.Probe(context.Background())

			if fake.calls != 1 {
				t.Errorf("GetProperties called %d times", fake.calls)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("Probe() error = %v, wantErr %v", err, tt.wantErr)
			}
			if IsBucketNotFound(err) != tt.wantNotFound {
				t.Errorf("IsBucketNotFound() = %v, want %v", IsBucketNotFound(err), tt.wantNotFound)
			}
		})
	}
}

func TestAzureProber_Close(t *testing.T) {
	p := &AzureProber{}
	if err := p.Close(); err != nil {
		t.Errorf("Close() should not error, got: %v", err)
	}
}
