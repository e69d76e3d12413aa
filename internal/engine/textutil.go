package engine

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "go_digest/1.0 (news dashboard)"
	UserAgentChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CollapseSpace folds runs of whitespace into single spaces and trims.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Text returns the trimmed, whitespace-collapsed text of a selection.
func Text(s *goquery.Selection) string {
	return CollapseSpace(s.Text())
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (Devanagari, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// HasClass reports whether any of the selection's classes contains sub.
// Matches per class token, the way class-pattern lookups on scraped pages expect.
func HasClass(s *goquery.Selection, sub string) bool {
	cls, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(cls) {
		if strings.Contains(c, sub) {
			return true
		}
	}
	return false
}
