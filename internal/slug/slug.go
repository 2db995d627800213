// Package slug translates between canonical jurisdiction names and the
// URL path segments the directory uses. Slugs are lossy, so the reverse
// direction matches a slug against a candidate list rather than trying
// to reconstruct the name.
package slug

import (
	"strings"
	"unicode"
)

// NameToSlug converts a display name to its URL form: lowercase, whitespace
// runs collapsed to single hyphens, anything outside [a-z0-9-] stripped,
// hyphen runs collapsed, leading/trailing hyphens removed. The output is
// deterministic; the same name always yields the same slug, which is what
// lets slugs round-trip through URLs.
func NameToSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	return strings.Trim(b.String(), "-")
}

// SlugToName converts a slug back to a display name by replacing hyphens
// with spaces and title-casing each word. This is not a true inverse of
// NameToSlug (stripped punctuation is gone for good); use FindBySlug when
// a candidate list is available.
func SlugToName(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FindBySlug returns the first candidate whose name matches the slug,
// either by case-insensitive comparison against the naive de-slugged name
// or by slugifying the candidate's own name. Returns the zero value and
// false when nothing matches.
func FindBySlug[T any](candidates []T, s string, nameOf func(T) string) (T, bool) {
	target := strings.ToLower(SlugToName(s))

	for _, c := range candidates {
		name := nameOf(c)
		if name == "" {
			continue
		}
		if strings.ToLower(name) == target || NameToSlug(name) == s {
			return c, true
		}
	}

	var zero T
	return zero, false
}
