package catalog

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Slugify derives a URL-safe category slug: lowercase, whitespace runs become a
// single hyphen, anything outside [A-Za-z0-9_-] is dropped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
