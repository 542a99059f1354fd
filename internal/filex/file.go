// Package filex contains small filesystem helpers shared by the CLI and
// the background worker.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any missing parents) and returns its
// absolute path. A relative dir is resolved against the current working
// directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// mime types attachments are served with; anything else is exported as .bin.
var mimeExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"text/plain":      ".txt",
	"text/html":       ".html",
}

// ExtensionForMime maps a MIME type to a file extension, defaulting to
// ".bin" for unknown types.
func ExtensionForMime(mimeType string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return ".bin"
}

// SaveAttachment writes data into dir under the given base name with an
// extension derived from mimeType, and returns the written path. dir is
// created when missing.
func SaveAttachment(dir, baseName, mimeType string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(abs, baseName+ExtensionForMime(mimeType))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
