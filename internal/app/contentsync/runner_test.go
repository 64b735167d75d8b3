package contentsync

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.uber.org/zap"
)

// memPages is an in-memory PageWriter keyed by slug, mirroring the store's
// upsert-on-slug semantics.
type memPages struct {
	pages map[string]models.CoursePage
	order []string // first-upsert order
	fail  map[string]bool
}

func newMemPages() *memPages {
	return &memPages{pages: map[string]models.CoursePage{}, fail: map[string]bool{}}
}

func (m *memPages) Upsert(ctx context.Context, page models.CoursePage) error {
	if m.fail[page.Slug] {
		return errors.New("simulated upsert failure")
	}
	if _, exists := m.pages[page.Slug]; !exists {
		m.order = append(m.order, page.Slug)
	}
	m.pages[page.Slug] = page
	return nil
}

func TestRun_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "第一课-开场白.md", "# 开场白\n\nwelcome\n")
	writeFile(t, root, "02-工具.md", "# 工具\n\n![shot](image/shot.png)\n")
	writeFile(t, root, "image/shot.png", "pngbytes")

	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	res, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Succeeded != 2 || res.Failed != 0 {
		t.Fatalf("tally = %d succeeded / %d failed, want 2 / 0", res.Succeeded, res.Failed)
	}
	if res.AssetsUploaded != 1 {
		t.Errorf("assets uploaded = %d, want 1", res.AssetsUploaded)
	}

	first, ok := pages.pages["开场白"]
	if !ok {
		t.Fatalf("missing page for slug 开场白; have %v", pages.order)
	}
	if first.SortOrder != 1 {
		t.Errorf("开场白 sort_order = %d, want 1", first.SortOrder)
	}
	if first.Title != "第一课-开场白" {
		t.Errorf("title must keep the source name verbatim, got %q", first.Title)
	}

	second, ok := pages.pages["工具"]
	if !ok {
		t.Fatalf("missing page for slug 工具; have %v", pages.order)
	}
	if second.SortOrder != 2 {
		t.Errorf("工具 sort_order = %d, want 2", second.SortOrder)
	}
	if !strings.Contains(second.MDContent, "https://cdn.example.com/image/shot.png") {
		t.Errorf("image reference not rewritten: %q", second.MDContent)
	}
}

func TestRun_SortsByDeclaredOrderNotDiscovery(t *testing.T) {
	root := t.TempDir()
	// Discovery (lexical) order puts 02 before 第一课, but the declared
	// lesson numbers must win.
	writeFile(t, root, "02-second.md", "two")
	writeFile(t, root, "第一课-first.md", "one")
	writeFile(t, root, "appendix.md", "no prefix")

	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	if _, err := runner.Run(context.Background(), root); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, want := pages.order, []string{"first", "second", "appendix"}; !equalStrings(got, want) {
		t.Errorf("processing order = %v, want %v", got, want)
	}
	// Unprefixed documents take their 1-based position in the sorted
	// sequence.
	if o := pages.pages["appendix"].SortOrder; o != 3 {
		t.Errorf("appendix sort_order = %d, want 3", o)
	}
}

func TestRun_UnprefixedKeepsDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "alpha.md", "a")
	writeFile(t, root, "beta.md", "b")
	writeFile(t, root, "gamma.md", "c")
	writeFile(t, root, "delta.md", "d")
	writeFile(t, root, "epsilon.md", "e")

	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	if _, err := runner.Run(context.Background(), root); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Discovery order is the walk's lexical order: alpha, beta, delta,
	// epsilon, gamma. Each unprefixed document gets its 1-based position.
	if o := pages.pages["epsilon"].SortOrder; o != 4 {
		t.Errorf("epsilon sort_order = %d, want 4", o)
	}
	if o := pages.pages["gamma"].SortOrder; o != 5 {
		t.Errorf("gamma sort_order = %d, want 5", o)
	}
}

func TestRun_SkipsAssetDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lesson.md", "doc")
	writeFile(t, root, "image/readme.md", "not a document")
	writeFile(t, root, "file/notes.md", "not a document")
	writeFile(t, root, "unit2/deeper.md", "nested doc")

	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	res, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2 (asset dirs must be skipped)", res.Succeeded)
	}
}

func TestRun_PerDocumentFailureDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "01-good.md", "fine")
	writeFile(t, root, "02-bad.md", "will fail")

	pages := newMemPages()
	pages.fail["bad"] = true
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	res, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run must not abort on per-document failure: %v", err)
	}
	if res.Succeeded != 1 || res.Failed != 1 {
		t.Errorf("tally = %d / %d, want 1 succeeded / 1 failed", res.Succeeded, res.Failed)
	}
}

func TestRun_MissingBucketFailsFast(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lesson.md", "doc")

	store := newRecordingStore()
	store.noBucket = true
	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: store, Log: zap.NewNop()}

	if _, err := runner.Run(context.Background(), root); err == nil {
		t.Fatal("expected an error for a missing bucket")
	}
	if len(pages.pages) != 0 {
		t.Error("no documents may be written when the bucket precondition fails")
	}
}

// Re-syncing must update rows in place, never duplicate a slug.
func TestRun_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "第一课-开场白.md", "v1")

	pages := newMemPages()
	runner := &Runner{Pages: pages, Blobs: newRecordingStore(), Log: zap.NewNop()}

	if _, err := runner.Run(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "第一课-开场白.md", "v2")
	if _, err := runner.Run(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	if len(pages.pages) != 1 {
		t.Fatalf("expected one row after re-sync, got %d", len(pages.pages))
	}
	if got := pages.pages["开场白"].MDContent; got != "v2" {
		t.Errorf("re-sync must overwrite content, got %q", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
