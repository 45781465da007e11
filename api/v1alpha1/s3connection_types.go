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

package v1alpha1

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// S3AccessStyle selects path-style or virtual-hosted bucket addressing
// +kubebuilder:validation:Enum=Path;VirtualHosted
type S3AccessStyle string

const (
	S3AccessStylePath          S3AccessStyle = "Path"
	S3AccessStyleVirtualHosted S3AccessStyle = "VirtualHosted"
)

// S3Credentials selects where the access and secret keys come from.
// Exactly one field must be set.
type S3Credentials struct {
	// SecretClass provisions the keys through the secret operator
	// +optional
	SecretClass string `json:"secretClass,omitempty"`

	// SecretName names a secret with accessKey and secretKey
	// +optional
	SecretName string `json:"secretName,omitempty"`
}

// NoVerification disables TLS certificate verification
type NoVerification struct{}

// WebPKIVerification verifies against the system trust store
type WebPKIVerification struct{}

// CACert selects the CA used for server verification
type CACert struct {
	// +optional
	SecretClass string `json:"secretClass,omitempty"`

	// +optional
	WebPKI *WebPKIVerification `json:"webPki,omitempty"`
}

// ServerVerification verifies the server certificate
type ServerVerification struct {
	CACert CACert `json:"caCert"`
}

// TLSVerification is a tagged variant of none or server
type TLSVerification struct {
	// +optional
	None *NoVerification `json:"none,omitempty"`

	// +optional
	Server *ServerVerification `json:"server,omitempty"`
}

// S3TLS enables TLS towards the S3 endpoint
type S3TLS struct {
	Verification TLSVerification `json:"verification"`
}

// CASecretClass returns the secret class of the server CA, or "".
func (t *S3TLS) CASecretClass() string {
	if t == nil || t.Verification.Server == nil {
		return ""
	}
	return t.Verification.Server.CACert.SecretClass
}

// S3ConnectionSpec defines the desired state of S3Connection
type S3ConnectionSpec struct {
	// +kubebuilder:validation:Required
	Host string `json:"host"`

	// +optional
	Port *int32 `json:"port,omitempty"`

	// Bucket is probed when dependency probing is enabled
	// +optional
	Bucket string `json:"bucket,omitempty"`

	// +kubebuilder:default=us-east-1
	// +optional
	Region string `json:"region,omitempty"`

	// +kubebuilder:default=VirtualHosted
	// +optional
	AccessStyle S3AccessStyle `json:"accessStyle,omitempty"`

	// +optional
	Credentials *S3Credentials `json:"credentials,omitempty"`

	// +optional
	TLS *S3TLS `json:"tls,omitempty"`
}

// Endpoint returns the S3 endpoint URL.
func (s *S3ConnectionSpec) Endpoint() string {
	scheme := "http"
	if s.TLS != nil {
		scheme = "https"
	}
	if s.Port != nil {
		return fmt.Sprintf("%s://%s:%d", scheme, s.Host, *s.Port)
	}
	return fmt.Sprintf("%s://%s", scheme, s.Host)
}

// RegionOrDefault returns the region, defaulting to us-east-1.
func (s *S3ConnectionSpec) RegionOrDefault() string {
	if s.Region == "" {
		return "us-east-1"
	}
	return s.Region
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:shortName=s3conn
// +kubebuilder:printcolumn:name="Host",type=string,JSONPath=`.spec.host`
// +kubebuilder:printcolumn:name="Bucket",type=string,JSONPath=`.spec.bucket`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// S3Connection is the Schema for the s3connections API
type S3Connection struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec S3ConnectionSpec `json:"spec,omitempty"`
}

// +kubebuilder:object:root=true

// S3ConnectionList contains a list of S3Connection
type S3ConnectionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []S3Connection `json:"items"`
}

func init() {
	SchemeBuilder.Register(&S3Connection{}, &S3ConnectionList{})
}
