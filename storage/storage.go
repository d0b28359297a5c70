// Package storage holds the blob-store port. The trigger services only
// ever remove objects that documents stopped referencing; deletion is
// best-effort and callers log rather than fail on errors.
package storage

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// FileStorage - blob store port
type FileStorage interface {
	// DeleteFile removes an object by storage path. Deleting a missing
	// object is not an error.
	DeleteFile(path string) error
}

// New creates a file storage adapter for the configured type.
func New(config *Config) (FileStorage, error) {
	switch config.Type {
	case "wasabi":
		return NewWasabiStorage(config.Bucket, config.Region, config.AccessKeyID, config.SecretAccessKey)
	case "memory":
		return NewMemoryStorage(), nil
	}
	return nil, errors.Errorf("unknown file storage type %q", config.Type)
}

// ExtractFilePath resolves a public download URL to the storage path of
// the object by locating the known folder token ("profile_images",
// "post_images", ...) within the URL path and returning the suffix from
// that token onward. Returns false when the URL does not reference the
// folder.
func ExtractFilePath(downloadURL, folder string) (string, bool) {
	parsed, err := url.Parse(downloadURL)
	if err != nil {
		return "", false
	}
	unescaped, err := url.PathUnescape(parsed.Path)
	if err != nil {
		return "", false
	}
	parts := strings.Split(unescaped, "/")
	for i, part := range parts {
		if part == folder {
			return strings.Join(parts[i:], "/"), true
		}
	}
	return "", false
}
