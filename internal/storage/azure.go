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
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// containerPropertiesAPI is the part of the container client the prober needs
type containerPropertiesAPI interface {
	GetProperties(ctx context.Context, o *container.GetPropertiesOptions) (container.GetPropertiesResponse, error)
}

// AzureProber probes an Azure storage container by reading its properties
type AzureProber struct {
	client    containerPropertiesAPI
	account   string
	container string
}

// NewAzureProber creates a prober authenticated with the account key of target
func NewAzureProber(target BucketTarget) (*AzureProber, error) {
	if target.Container == "" {
		return nil, fmt.Errorf("Azure container name is required")
	}
	if target.Account == "" {
		return nil, fmt.Errorf("Azure storage account is required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", target.Account)

	cred, err := azblob.NewSharedKeyCredential(target.Account, target.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return &AzureProber{
		client:    client.ServiceClient().NewContainerClient(target.Container),
		account:   target.Account,
		container: target.Container,
	}, nil
}

// Probe reads the container properties
func (p *AzureProber) Probe(ctx context.Context) error {
	_, err := p.client.GetProperties(ctx, nil)
	if err == nil {
		return nil
	}
	if bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return fmt.Errorf("%w: azure container %s/%s", ErrBucketNotFound, p.account, p.container)
	}
	return fmt.Errorf("failed to get Azure container %s/%s: %w", p.account, p.container, err)
}

// Close is a no-op for the Azure client
func (p *AzureProber) Close() error {
	return nil
}
