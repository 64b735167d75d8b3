package contentsync

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestRewrite_ImageReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image/a.png", "pngbytes")

	u := NewUploader(newRecordingStore(), zap.NewNop())
	got := u.Rewrite(context.Background(), `before ![x](image/a.png) after`, dir)

	want := `before ![x](https://cdn.example.com/image/a.png) after`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewrite_FileReferenceDropsQuotedTitle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file/slides.pdf", "pdfbytes")

	u := NewUploader(newRecordingStore(), zap.NewNop())
	got := u.Rewrite(context.Background(), `see [slides](file/slides.pdf "Lecture slides")`, dir)

	want := `see [slides](https://cdn.example.com/file/slides.pdf)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewrite_UnresolvableLeftByteIdentical(t *testing.T) {
	dir := t.TempDir() // no assets on disk

	input := `![x](image/missing.png) and [f](file/gone.pdf)`
	u := NewUploader(newRecordingStore(), zap.NewNop())
	got := u.Rewrite(context.Background(), input, dir)

	if got != input {
		t.Errorf("unresolvable references must stay byte-identical:\n got %q\nwant %q", got, input)
	}
}

func TestRewrite_IdenticalSnippetsBothReplaced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image/a.png", "pngbytes")

	input := `![x](image/a.png) middle ![x](image/a.png)`
	u := NewUploader(newRecordingStore(), zap.NewNop())
	got := u.Rewrite(context.Background(), input, dir)

	if n := strings.Count(got, "https://cdn.example.com/image/a.png"); n != 2 {
		t.Errorf("expected both identical references replaced, got %q", got)
	}
	if strings.Contains(got, "(image/a.png)") {
		t.Errorf("original reference survived: %q", got)
	}
}

func TestRewrite_MixedResolvedAndUnresolved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image/ok.png", "pngbytes")

	input := "![a](image/ok.png)\n![b](image/missing.png)\nplain [link](https://example.com)"
	u := NewUploader(newRecordingStore(), zap.NewNop())
	got := u.Rewrite(context.Background(), input, dir)

	if !strings.Contains(got, "![a](https://cdn.example.com/image/ok.png)") {
		t.Errorf("resolved reference not rewritten: %q", got)
	}
	if !strings.Contains(got, "![b](image/missing.png)") {
		t.Errorf("unresolved reference altered: %q", got)
	}
	if !strings.Contains(got, "[link](https://example.com)") {
		t.Errorf("non-asset link must be untouched: %q", got)
	}
}
