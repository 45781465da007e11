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

package types

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Prober checks that an external dependency of the metastore is reachable.
// Implementations are short lived: create, Probe, Close.
type Prober interface {
	Probe(ctx context.Context) error
	Close() error
}

// DatabaseTarget describes the metastore database as seen by the metastore
// itself: the JDBC URL from the cluster spec and the resolved credentials.
type DatabaseTarget struct {
	Kind     string
	JDBCURL  string
	Username string
	Password string
}

// String never includes the password.
func (t DatabaseTarget) String() string {
	return fmt.Sprintf("%s %s (user %s)", t.Kind, t.JDBCURL, t.Username)
}

// BucketTarget describes the object storage location used by the warehouse.
type BucketTarget struct {
	// Kind is s3, gcs or azure
	Kind string

	// S3
	Bucket    string
	Endpoint  string
	Region    string
	PathStyle bool
	AccessKey string
	SecretKey string

	// GCS
	ServiceAccountJSON []byte

	// Azure
	Account    string
	AccountKey string
	Container  string
}

// String never includes key material.
func (t BucketTarget) String() string {
	switch t.Kind {
	case "azure":
		return fmt.Sprintf("azure %s/%s", t.Account, t.Container)
	case "s3":
		return fmt.Sprintf("s3 %s/%s", t.Endpoint, t.Bucket)
	default:
		return fmt.Sprintf("%s %s", t.Kind, t.Bucket)
	}
}

// JDBCURL is the parsed form of a jdbc:<driver>://host[:port]/database?params URL.
type JDBCURL struct {
	Driver   string
	Host     string
	Port     int
	Database string
	Params   url.Values
}

// ParseJDBCURL parses the URL forms used by the postgresql and mysql drivers.
func ParseJDBCURL(raw string) (*JDBCURL, error) {
	rest, ok := strings.CutPrefix(raw, "jdbc:")
	if !ok {
		return nil, fmt.Errorf("jdbc url %q must start with jdbc:", raw)
	}
	u, err := url.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid jdbc url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("jdbc url %q has no host", raw)
	}

	out := &JDBCURL{
		Driver:   u.Scheme,
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
		Params:   u.Query(),
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port in jdbc url: %w", err)
		}
		out.Port = port
	}
	return out, nil
}

// Address returns host:port, using defaultPort when the URL has none.
func (j *JDBCURL) Address(defaultPort int) string {
	port := j.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(j.Host, strconv.Itoa(port))
}
