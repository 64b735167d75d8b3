// Package markdownview renders stored course Markdown to sanitized HTML
// for the course detail screen.
package markdownview

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// The converter and policy are initialized once and reused. Both are safe
// for concurrent use; per-call state lives in the buffers below.
var (
	initOnce  sync.Once
	converter goldmark.Markdown
	policy    *bluemonday.Policy
)

func setup() {
	converter = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			// Stored content is author-controlled but passes through the
			// sync pipeline and the sanitizer below; hard wraps keep
			// CJK prose readable.
			html.WithHardWraps(),
		),
	)

	// UGCPolicy allows the formatting tags Markdown produces while
	// stripping scripts, event handlers, and embedded HTML payloads.
	policy = bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre")
}

// Render converts Markdown to sanitized HTML ready for template embedding.
// Conversion failure yields empty HTML rather than unsanitized output.
func Render(md string) (template.HTML, error) {
	initOnce.Do(setup)

	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
