// internal/app/contentsync/runner.go
package contentsync

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lessonhub-app/lessonhub/internal/app/system/blobstore"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.uber.org/zap"
)

// Reserved asset directory names. Directories with these names hold images
// and downloadable files, not documents, and are skipped by the walk.
const (
	imageDirName = "image"
	fileDirName  = "file"
)

var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// PageWriter is the slice of the course-page store the runner needs.
type PageWriter interface {
	Upsert(ctx context.Context, page models.CoursePage) error
}

// Result tallies one sync run.
type Result struct {
	Succeeded      int
	Failed         int
	AssetsUploaded int
}

// Runner drives one content sync: walk, order, rewrite, upsert.
type Runner struct {
	Pages PageWriter
	Blobs blobstore.Store
	Log   *zap.Logger
}

type candidate struct {
	path string // absolute path to the document
	name string // file name without extension
}

// Run executes one full sync of root. It fails fast if the storage bucket
// is missing, and otherwise never aborts on a per-document error: failures
// are logged with the document name and counted in the result.
func (r *Runner) Run(ctx context.Context, root string) (Result, error) {
	runID := uuid.NewString()[:8]
	log := r.Log.With(zap.String("run_id", runID))

	ok, err := r.Blobs.BucketExists(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("checking storage bucket: %w", err)
	}
	if !ok {
		return Result{}, fmt.Errorf("storage bucket does not exist; create it before syncing")
	}

	candidates, err := discover(root)
	if err != nil {
		return Result{}, fmt.Errorf("scanning content root %q: %w", root, err)
	}
	log.Info("content scan complete",
		zap.String("root", root),
		zap.Int("documents", len(candidates)))

	// Prefixed names sort by their declared lesson number; everything else
	// sorts after them in discovery order. The per-item sort_order is then
	// the declared number where present, else the item's 1-based position
	// in this sorted sequence.
	sort.SliceStable(candidates, func(i, j int) bool {
		return sortKey(candidates[i].name) < sortKey(candidates[j].name)
	})

	uploader := NewUploader(r.Blobs, log)
	var res Result

	for i, c := range candidates {
		if err := r.syncOne(ctx, uploader, c, i+1); err != nil {
			log.Error("document sync failed",
				zap.String("document", c.name),
				zap.Error(err))
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	res.AssetsUploaded = uploader.Uploaded()
	log.Info("sync run finished",
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Int("assets_uploaded", res.AssetsUploaded))
	return res, nil
}

func (r *Runner) syncOne(ctx context.Context, uploader *Uploader, c candidate, position int) error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	body := uploader.Rewrite(ctx, string(raw), filepath.Dir(c.path))
	now := time.Now().UTC()

	page := models.CoursePage{
		Slug:      DeriveSlug(c.name),
		Title:     c.name,
		SortOrder: DeriveOrder(c.name, position),
		MDContent: body,
		UpdatedAt: now,
	}
	if err := r.Pages.Upsert(ctx, page); err != nil {
		return fmt.Errorf("upsert %q: %w", page.Slug, err)
	}
	return nil
}

func sortKey(name string) float64 {
	if hasOrdinalPrefix(name) {
		return float64(DeriveOrder(name, 0))
	}
	return math.Inf(1)
}

// discover walks root collecting document candidates in directory order,
// skipping the reserved asset directories.
func discover(root string) ([]candidate, error) {
	var out []candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == imageDirName || d.Name() == fileDirName {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !documentExtensions[ext] {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		out = append(out, candidate{path: path, name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
