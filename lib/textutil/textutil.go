package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugInvalidRegex    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespaceRegex = regexp.MustCompile(`\s+`)
	slugDashRegex       = regexp.MustCompile(`-+`)
	innerWhitespace     = regexp.MustCompile(`\s+`)
)

// Slugify turns a display name into the path segment hibid uses in profile urls.
// "A & B Auctions, LLC" -> "a-b-auctions-llc"
func Slugify(name string) string {
	// \s in regexp is ascii only, unicode spaces become ' ' first
	slug := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, strings.ToLower(name))
	slug = strings.TrimSpace(slug)
	slug = slugInvalidRegex.ReplaceAllString(slug, "")
	slug = slugWhitespaceRegex.ReplaceAllString(slug, "-")
	slug = slugDashRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// JoinNonBlank joins the parts that contain something other than whitespace.
func JoinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, sep)
}

// CollapseWhitespace trims the string and replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
