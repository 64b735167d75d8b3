// internal/app/contentsync/uploader.go
package contentsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lessonhub-app/lessonhub/internal/app/system/blobstore"
	"go.uber.org/zap"
)

// contentTypes is the fixed extension lookup for uploaded assets. Unknown
// extensions fall back to a generic binary type.
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
}

const genericContentType = "application/octet-stream"

// ContentTypeFor returns the content type for a file name by extension.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return genericContentType
}

// Uploader pushes local asset files to object storage, de-duplicating by
// storage path for the lifetime of one sync run. Failures never propagate:
// a missing file or failed write is logged and reported as not-ok, and the
// caller leaves the original reference untouched.
type Uploader struct {
	store blobstore.Store
	log   *zap.Logger

	// urls caches successful uploads by storage path. Scoped to this
	// Uploader, which is scoped to one run; never shared across runs.
	urls map[string]string
}

func NewUploader(store blobstore.Store, logger *zap.Logger) *Uploader {
	return &Uploader{
		store: store,
		log:   logger,
		urls:  map[string]string{},
	}
}

// Upload stores the file at localPath under storagePath and returns its
// public URL. A repeated storagePath within the run returns the cached URL
// without touching storage again.
func (u *Uploader) Upload(ctx context.Context, localPath, storagePath string) (string, bool) {
	if url, ok := u.urls[storagePath]; ok {
		return url, true
	}

	f, err := os.Open(localPath)
	if err != nil {
		u.log.Warn("asset file unreadable, leaving reference unresolved",
			zap.String("local_path", localPath),
			zap.Error(err))
		return "", false
	}
	defer f.Close()

	if err := u.store.Put(ctx, storagePath, f, ContentTypeFor(localPath)); err != nil {
		u.log.Warn("asset upload failed, leaving reference unresolved",
			zap.String("storage_path", storagePath),
			zap.Error(err))
		return "", false
	}

	url := u.store.PublicURL(storagePath)
	u.urls[storagePath] = url
	return url, true
}

// Uploaded returns how many distinct assets reached storage this run.
func (u *Uploader) Uploaded() int {
	return len(u.urls)
}
