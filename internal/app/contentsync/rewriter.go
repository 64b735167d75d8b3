// internal/app/contentsync/rewriter.go
package contentsync

import (
	"context"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// The rewriter recognizes exactly two reference shapes: image references
// into the reserved image/ directory and plain links into the reserved
// file/ directory, each with an optional quoted title that is dropped on
// rewrite. Reference-style and HTML-embedded syntax are out of scope.
var (
	imageRefRe = regexp.MustCompile(`!\[([^\]]*)\]\((image/[^)\s]+)(?:\s+"[^"]*")?\)`)
	fileRefRe  = regexp.MustCompile(`\[([^\]]*)\]\((file/[^)\s]+)(?:\s+"[^"]*")?\)`)
)

type span struct {
	start, end  int
	replacement string
}

// Rewrite scans content for local asset references, uploads each referenced
// file via the uploader, and rebuilds the text in a single left-to-right
// pass substituting resolved spans. Replacement is positional, not textual,
// so two different spans that happen to share identical text cannot
// interfere with each other. Unresolved references are left byte-identical.
func (u *Uploader) Rewrite(ctx context.Context, content, baseDir string) string {
	var spans []span

	collect := func(re *regexp.Regexp, shape func(label, url string) string) {
		for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
			start, end := m[0], m[1]
			label := content[m[2]:m[3]]
			relPath := content[m[4]:m[5]]

			// Image references are written as ![x](image/a.png); the
			// leading "!" belongs to the image shape, and fileRefRe must
			// not claim the bracketed tail of an image match.
			localPath := filepath.Join(baseDir, filepath.FromSlash(relPath))
			url, ok := u.Upload(ctx, localPath, relPath)
			if !ok {
				continue
			}
			spans = append(spans, span{start: start, end: end, replacement: shape(label, url)})
		}
	}

	collect(imageRefRe, func(label, url string) string {
		return "![" + label + "](" + url + ")"
	})
	collect(fileRefRe, func(label, url string) string {
		return "[" + label + "](" + url + ")"
	})

	if len(spans) == 0 {
		return content
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(content))
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			// Overlapping span (an image match whose link tail also
			// matched the file pattern); the earlier span wins.
			continue
		}
		b.WriteString(content[pos:sp.start])
		b.WriteString(sp.replacement)
		pos = sp.end
	}
	b.WriteString(content[pos:])
	return b.String()
}
