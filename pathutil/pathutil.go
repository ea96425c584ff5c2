package pathutil

import (
	"strings"
	"unicode"
)

// Normalize replaces backslashes with forward slashes, collapses runs
// of "/" to one, strips a leading "/" (paths are relative, never
// absolute from the caller's point of view), and strips a trailing
// "/" unless the input is exactly "/".
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	p = strings.ReplaceAll(p, "\\", "/")

	var b strings.Builder
	b.Grow(len(p))
	prevSlash := false
	for _, r := range p {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	out := b.String()

	if out == "/" {
		return "/"
	}

	out = strings.TrimPrefix(out, "/")
	out = strings.TrimSuffix(out, "/")
	return out
}

// Join concatenates a and b with a single "/" between them, removing
// duplicate separators at the seam. An empty a or b returns the other
// side unchanged.
func Join(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	b = strings.TrimPrefix(b, "/")

	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "/" + b
}

// SplitComponents splits a normalized relative path into its non-empty
// slash-delimited components. SplitComponents("") returns nil.
func SplitComponents(p string) []string {
	p = Normalize(p)
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Parent returns the normalized relative path of p's parent directory,
// or "" if p is a top-level entry (its parent is the root).
func Parent(p string) string {
	p = Normalize(p)
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// Base returns the last slash-delimited component of p.
func Base(p string) string {
	p = Normalize(p)
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// Prefixes returns every non-empty slash-separated prefix of p, from
// shortest to longest: for "a/b/c" that is ["a", "a/b", "a/b/c"].
// Used by the resolver to test each ancestor directory as a candidate
// archive path.
func Prefixes(p string) []string {
	comp := SplitComponents(p)
	if len(comp) == 0 {
		return nil
	}
	out := make([]string, 0, len(comp))
	cur := comp[0]
	out = append(out, cur)
	for _, c := range comp[1:] {
		cur = cur + "/" + c
		out = append(out, cur)
	}
	return out
}

// SortKey produces a case-insensitive, natural-number-aware sort key
// for name, so that "file2" sorts before "file10". It is used to
// satisfy the deterministic ordering guarantee on list_entries.
func SortKey(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower) + 8)

	runes := []rune(lower)
	i := 0
	for i < len(runes) {
		if unicode.IsDigit(runes[i]) {
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			digits := string(runes[i:j])
			// Zero-pad to a fixed width so numeric comparison matches
			// lexicographic comparison of the padded string.
			const width = 20
			pad := width - len(digits)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat("0", pad))
			b.WriteString(digits)
			i = j
		} else {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

// Less reports whether a should sort before b under SortKey.
func Less(a, b string) bool {
	return SortKey(a) < SortKey(b)
}
