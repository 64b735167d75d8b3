// internal/app/system/blobstore/local.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the filesystem under a root directory and serves
// them from a URL prefix. Used for development and tests.
type Local struct {
	root      string
	urlPrefix string
}

// NewLocal creates a Local store rooted at root, serving under urlPrefix
// (e.g. "/files/assets").
func NewLocal(root, urlPrefix string) *Local {
	return &Local{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Root returns the filesystem root, for mounting a file server over it.
func (l *Local) Root() string { return l.root }

func (l *Local) Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (l *Local) PublicURL(path string) string {
	return l.urlPrefix + "/" + strings.TrimLeft(path, "/")
}

func (l *Local) BucketExists(ctx context.Context) (bool, error) {
	info, err := os.Stat(l.root)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
