// Package identity canonicalizes raw roster fields into the values the
// resolution pipeline keys on: bare hostnames and board-slug candidates.
package identity

import (
	"net/url"
	"regexp"
	"strings"
)

// noWebsiteSentinel marks roster rows whose website column explicitly says
// the company has none.
const noWebsiteSentinel = "No website:"

// NormalizeDomain reduces a raw website string to a bare lowercase hostname.
// The second return is false when no usable host can be derived: blank input,
// the no-website sentinel, or an unparseable URL. It never panics on garbage.
func NormalizeDomain(website string) (string, bool) {
	website = strings.TrimSpace(website)
	if website == "" || strings.HasPrefix(website, noWebsiteSentinel) {
		return "", false
	}
	if !strings.HasPrefix(website, "http") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	return host, true
}

// FirstLabel returns the leading DNS label of a normalized hostname
// ("acme" for "acme.io"), or "" for an empty domain.
func FirstLabel(domain string) string {
	if domain == "" {
		return ""
	}
	return strings.SplitN(domain, ".", 2)[0]
}

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds the base board slug from a company name: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, outer hyphens trimmed.
// Returns "" for names with no usable characters.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugSuffixes are appended to the base slug, in this order. The order is
// load-bearing: callers stop at the first candidate a backend accepts.
var slugSuffixes = []string{"-labs", "-foundation", "-protocol", "-network", "-team"}

// SlugVariants produces the ordered, de-duplicated candidate identifiers for
// a company: the domain-derived label first (cheapest and most often right),
// then the name-derived base slug and its suffixed variants.
func SlugVariants(name, domainLabel string) []string {
	var candidates []string
	if domainLabel != "" {
		candidates = append(candidates, domainLabel)
	}
	if base := Slugify(name); base != "" {
		candidates = append(candidates, base)
		for _, suffix := range slugSuffixes {
			candidates = append(candidates, base+suffix)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	uniq := candidates[:0]
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	return uniq
}
