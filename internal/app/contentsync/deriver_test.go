package contentsync

import "testing"

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"第一课-开场白", "开场白"},
		{"第十课 总结", "总结"},
		{"03-advanced", "advanced"},
		{"02-工具", "工具"},
		{"Intro To Go", "intro-to-go"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"Mixed_Case&Symbols!", "mixedcasesymbols"},
		{"01intro", "01intro"}, // no separator, number stays in the slug
		{"第一课", "第一课"}, // prefix strip empties it; falls back to the full name
		{"!!!", "untitled"},
		{"", "untitled"},
	}
	for _, c := range cases {
		if got := DeriveSlug(c.name); got != c.want {
			t.Errorf("DeriveSlug(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDeriveSlug_Deterministic(t *testing.T) {
	names := []string{"第一课-开场白", "03-advanced", "random name"}
	for _, n := range names {
		if DeriveSlug(n) != DeriveSlug(n) {
			t.Errorf("DeriveSlug(%q) is not deterministic", n)
		}
	}
}

func TestDeriveOrder(t *testing.T) {
	cases := []struct {
		name     string
		fallback int
		want     int
	}{
		{"第一课-intro", 99, 1},
		{"第十课-end", 99, 10},
		{"03-advanced", 99, 3},
		{"12. notes", 99, 12},
		{"03", 99, 3},      // bare number, no separator
		{"01intro", 99, 1}, // number glued to the title still orders
		{"no prefix here", 5, 5},
		{"第课-broken", 7, 7}, // malformed ordinal, not recognized
	}
	for _, c := range cases {
		if got := DeriveOrder(c.name, c.fallback); got != c.want {
			t.Errorf("DeriveOrder(%q, %d) = %d, want %d", c.name, c.fallback, got, c.want)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"a.png":     "image/png",
		"b.JPG":     "image/jpeg",
		"c.pdf":     "application/pdf",
		"d.unknown": "application/octet-stream",
		"noext":     "application/octet-stream",
	}
	for name, want := range cases {
		if got := ContentTypeFor(name); got != want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}
