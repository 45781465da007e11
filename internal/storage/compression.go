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
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression algorithms for bundle archives
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionLZ4  = "lz4"
	CompressionZstd = "zstd"
)

// Compressor wraps the tar stream of a bundle
type Compressor interface {
	Compress(w io.Writer) (io.WriteCloser, error)
	Decompress(r io.Reader) (io.ReadCloser, error)

	// Extension is the canonical archive suffix, e.g. ".tar.zst"
	Extension() string
}

type codec struct {
	algorithm  string
	suffixes   []string
	compress   func(io.Writer) (io.WriteCloser, error)
	decompress func(io.Reader) (io.ReadCloser, error)
}

func (c *codec) Compress(w io.Writer) (io.WriteCloser, error)  { return c.compress(w) }
func (c *codec) Decompress(r io.Reader) (io.ReadCloser, error) { return c.decompress(r) }
func (c *codec) Extension() string                             { return c.suffixes[0] }

var codecs = []*codec{
	{CompressionNone, []string{".tar"}, compressNone, decompressNone},
	{CompressionGzip, []string{".tar.gz", ".tgz"}, compressGzip, decompressGzip},
	{CompressionZstd, []string{".tar.zst"}, compressZstd, decompressZstd},
	{CompressionLZ4, []string{".tar.lz4"}, compressLZ4, decompressLZ4},
}

func compressNone(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil }

func decompressNone(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

func compressGzip(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, gzip.BestCompression)
}

func decompressGzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func compressZstd(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
}

func decompressZstd(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

func compressLZ4(w io.Writer) (io.WriteCloser, error) {
	lw := lz4.NewWriter(w)
	if err := lw.Apply(lz4.ConcurrencyOption(1)); err != nil {
		return nil, fmt.Errorf("failed to configure lz4: %w", err)
	}
	return lw, nil
}

func decompressLZ4(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// NewCompressor returns the codec for algorithm. Empty selects gzip.
func NewCompressor(algorithm string) (Compressor, error) {
	if algorithm == "" {
		algorithm = CompressionGzip
	}
	for _, c := range codecs {
		if c.algorithm == algorithm {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
}

// CompressorForPath picks the codec from the suffix of a bundle file name.
func CompressorForPath(path string) (Compressor, error) {
	var known []string
	for _, c := range codecs {
		for _, s := range c.suffixes {
			if strings.HasSuffix(path, s) {
				return c, nil
			}
			known = append(known, s)
		}
	}
	return nil, fmt.Errorf("bundle %q must end in one of %s", path, strings.Join(known, ", "))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
