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
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// BundleFile is one entry of a rendered bundle
type BundleFile struct {
	Name string
	Data []byte
}

// bundleModTime is fixed so that the same input always yields the same archive
var bundleModTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteBundle writes files as a tar archive compressed with c. Entries are
// sorted by name.
func WriteBundle(w io.Writer, c Compressor, files []BundleFile) (err error) {
	cw, err := c.Compress(w)
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	defer func() {
		// flush the compressor after the tar trailer
		if cerr := cw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close compressor: %w", cerr)
		}
	}()

	sorted := make([]BundleFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	tw := tar.NewWriter(cw)
	for _, f := range sorted {
		hdr := &tar.Header{
			Name:    f.Name,
			Mode:    0o644,
			Size:    int64(len(f.Data)),
			ModTime: bundleModTime,
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", f.Name, err)
		}
		if _, err := tw.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// ReadBundle reads an archive written by WriteBundle
func ReadBundle(r io.Reader, c Compressor) ([]BundleFile, error) {
	dr, err := c.Decompress(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dr.Close()

	var files []BundleFile
	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive: %w", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		files = append(files, BundleFile{Name: hdr.Name, Data: data})
	}
}
