package adapter

import (
	"html"
	"regexp"
	"strings"
)

// maxDescriptionLen bounds every free-text description snippet.
const maxDescriptionLen = 500

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities (handles Greenhouse's double-encoding;
// no-op on already-real HTML), strips all tags, then collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// shortDescription strips markup and clips the result to the fixed snippet
// length, respecting rune boundaries.
func shortDescription(content string) string {
	plain := extractText(content)
	runes := []rune(plain)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return plain
}

// ShortDescription is shortDescription exported for the generic fallback
// extractors, which share the adapters' snippet contract.
func ShortDescription(content string) string {
	return shortDescription(content)
}

// clip bounds a posting slice to at most limit entries.
func clip[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var (
	locationLabelRegex = regexp.MustCompile(`(?i)Location[:\s]+([^|\n]+)`)
	typeLabelRegex     = regexp.MustCompile(`(?i)(?:Employment Type|Type|Department)[:\s]+([^|\n]+)`)
)

// labeledLocation pulls a "Location: ..." value out of free card text.
func labeledLocation(text string) string {
	if m := locationLabelRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// labeledType pulls an "Employment Type: ..." / "Type: ..." / "Department: ..."
// value out of free card text.
func labeledType(text string) string {
	if m := typeLabelRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// absoluteURL resolves href against base when it is not already absolute.
func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(base, "/") + href
}
