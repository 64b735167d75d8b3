package markdownview

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out, err := Render("# 开场白\n\nwelcome to the **course**")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<h1") || !strings.Contains(s, "开场白") {
		t.Errorf("heading not rendered: %q", s)
	}
	if !strings.Contains(s, "<strong>course</strong>") {
		t.Errorf("emphasis not rendered: %q", s)
	}
}

func TestRender_StripsScripts(t *testing.T) {
	out, err := Render("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<script") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}

func TestRender_KeepsImages(t *testing.T) {
	out, err := Render("![shot](https://cdn.example.com/image/shot.png)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<img`) {
		t.Errorf("image markup dropped: %q", out)
	}
}
