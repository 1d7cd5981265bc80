package papermill

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFilenameLength bounds sanitized names, in runes.
const MaxFilenameLength = 100

// Untitled is the name used when nothing usable remains after sanitizing.
const Untitled = "untitled"

// CollapseSpace trims s and reduces internal whitespace runs to single
// spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeFilename turns an arbitrary title into a safe file name stem.
// Reserved characters and control characters become underscores, runs of
// whitespace collapse to one space, and leading or trailing dots and spaces
// are removed.
func SanitizeFilename(name string) string {
	var b strings.Builder
	space := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
			}
			space = true
		case strings.ContainsRune(`<>:"/\|?*`, r), unicode.IsControl(r):
			b.WriteRune('_')
			space = false
		default:
			b.WriteRune(r)
			space = false
		}
	}

	s := strings.Trim(b.String(), ". ")
	if utf8.RuneCountInString(s) > MaxFilenameLength {
		s = strings.TrimRight(string([]rune(s)[:MaxFilenameLength]), ". ")
	}
	if s == "" {
		return Untitled
	}
	return s
}

// SiteKey derives the corpus grouping key from a URL: its lowercase host,
// port included. Unparseable input falls back to the text before the first
// slash after the scheme.
func SiteKey(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	s := rawURL
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}
