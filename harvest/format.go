package harvest

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/papermill"
)

// ContentHash returns the xxhash of content in hex.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// DocumentName returns the file name stem for a candidate's payload and
// text. Candidates without a usable title are named after their payload URL.
func DocumentName(c *papermill.CandidateDocument) string {
	title := strings.TrimSpace(c.Title)
	if title != "" && title != papermill.NotFound {
		if name := papermill.SanitizeFilename(title); name != papermill.Untitled {
			return name
		}
	}
	return "doc_" + ContentHash(c.PayloadURL)
}

// PageName returns the file name stem for a scraped page: its host and path
// with separators replaced.
func PageName(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	return papermill.SanitizeFilename(s)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
