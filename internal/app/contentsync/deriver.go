// Package contentsync turns a directory of Markdown lessons into
// course_pages rows: it derives stable slugs and sort orders from file
// names, uploads referenced local assets to object storage, rewrites the
// Markdown to point at the uploaded URLs, and upserts each document keyed
// by slug.
package contentsync

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// The lesson-number prefix comes in two shapes: a Chinese ordinal
// ("第三课") or a leading decimal number ("03"). Any bare leading number
// sets the sort order, but only a number followed by a separator is
// stripped from the slug, so a title like "3dprinting" keeps its name.
var (
	cjkOrdinalRe = regexp.MustCompile(`^第([一二三四五六七八九十])课[-_\s]*`)
	decimalRe    = regexp.MustCompile(`^([0-9]+)[-_.\s]+`)
	leadingNumRe = regexp.MustCompile(`^[0-9]+`)
)

var cjkNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
}

// slugFallback is used when the transform strips a name down to nothing.
const slugFallback = "untitled"

// DeriveSlug maps a source document name to its stable slug: the recognized
// ordinal prefix is stripped, the rest is lowercased, whitespace runs
// collapse to single hyphens, and anything outside letters, digits, Han
// runes, and hyphens is dropped. A name that reduces to nothing falls back
// to the same transform on the untrimmed name, then to a literal token.
// The function is pure; the slug is the idempotency key for upserts.
func DeriveSlug(name string) string {
	trimmed := stripOrdinalPrefix(name)
	if s := slugify(trimmed); s != "" {
		return s
	}
	if s := slugify(name); s != "" {
		return s
	}
	return slugFallback
}

// DeriveOrder maps a source document name to its sort order. Checked in
// order: the Chinese ordinal's value, a bare leading decimal number (no
// separator required), then the caller-supplied 1-based fallback index
// for names carrying neither.
func DeriveOrder(name string, fallbackIndex int) int {
	if m := cjkOrdinalRe.FindStringSubmatch(name); m != nil {
		if v, ok := cjkNumerals[m[1]]; ok {
			return v
		}
	}
	if m := leadingNumRe.FindString(name); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return v
		}
	}
	return fallbackIndex
}

// hasOrdinalPrefix reports whether the name carries a lesson number.
// Names without one sort after all numbered names, keeping their
// discovery order.
func hasOrdinalPrefix(name string) bool {
	return cjkOrdinalRe.MatchString(name) || leadingNumRe.MatchString(name)
}

func stripOrdinalPrefix(name string) string {
	if m := cjkOrdinalRe.FindString(name); m != "" {
		return name[len(m):]
	}
	if m := decimalRe.FindString(name); m != "" {
		return name[len(m):]
	}
	return name
}

func slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastHyphen := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r), r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.Is(unicode.Han, r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			// dropped
		}
	}
	return strings.TrimRight(b.String(), "-")
}
