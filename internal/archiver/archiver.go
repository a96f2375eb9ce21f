// Package archiver writes a UTF-8 blob into a single-entry zip file.
// archive/zip is the idiomatic stdlib choice for a named single-entry
// archive; nothing in this package needs compression tuning or multi-entry
// support, so no third-party zip library is pulled in for it.
package archiver

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archiver produces a single-entry zip at path containing text.
type Archiver interface {
	SaveToZip(text, path string) error
}

// Zip is the real Archiver.
type Zip struct{}

// SaveToZip writes text as the sole member of a new zip file at path,
// creating parent directories as needed. The entry name is the zip file's
// base name with the .zip suffix replaced by .txt, deterministic per
// invocation.
func (Zip) SaveToZip(text, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for zip %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create zip %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	entryName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
	w, err := zw.Create(entryName)
	if err != nil {
		zw.Close()
		return fmt.Errorf("create zip entry %s: %w", entryName, err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		zw.Close()
		return fmt.Errorf("write zip entry %s: %w", entryName, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip %s: %w", path, err)
	}
	return nil
}
