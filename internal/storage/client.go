// Package storage defines the object store uploaded files are kept in.
//
// Providers live under providers/: local keeps objects on disk and serves
// them back over HTTP, s3 writes to any S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

// Client defines the interface for object storage operations
type Client interface {
	// Upload writes content under key. size may be -1 when unknown.
	Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the reference stored on the user record for key
	URL(key string) string
}

// ValidateKey rejects keys that could escape the storage root.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	if path.Clean(key) != key {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return ErrInvalidKey
		}
	}
	return nil
}
