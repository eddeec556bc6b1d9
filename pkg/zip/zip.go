// Package zip bundles in-memory files into a single archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// File is one archive entry.
type File struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Archive writes files in order. Duplicate names are rejected.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.Name == "" {
			return nil, fmt.Errorf("zip: entry name is required")
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("zip: duplicate entry %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
