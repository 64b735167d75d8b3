// Package blobstore abstracts the object-storage capability the app needs:
// put a blob at a path (overwriting any prior version), resolve the path to
// a public URL, and confirm the target bucket exists before a batch run
// starts writing.
package blobstore

import (
	"context"
	"io"
)

// Store is the object-storage capability.
type Store interface {
	// Put writes the blob at path with the given content type, replacing
	// any existing object so re-runs after an asset edit are safe.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// PublicURL returns the URL at which the object at path is served.
	PublicURL(path string) string

	// BucketExists reports whether the configured bucket (or local root)
	// is available for writes.
	BucketExists(ctx context.Context) (bool, error)
}
