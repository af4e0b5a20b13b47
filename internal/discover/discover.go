// Package discover fingerprints which ATS a company actually uses by
// scanning its own careers page for embedded board URLs. It is consulted only
// after the declared backend and every inferred slug have come up empty.
package discover

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/adapter"
	"github.com/jobsift/jobsift/internal/model"
)

// careerPaths are probed in order under the company's own domain. The first
// path that answers 2xx is the only page ever inspected.
var careerPaths = []string{
	"/careers",
	"/jobs",
	"/join-us",
	"/careers/",
	"/work-with-us",
	"/open-roles",
	"/about/careers",
}

// sniffTimeout bounds each candidate-path probe.
const sniffTimeout = 8 * time.Second

// rule is one fingerprint: a pattern whose first capture group (or ident
// transform) yields the board identifier for a backend.
type rule struct {
	backend model.Backend
	re      *regexp.Regexp
	// ident builds the identifier token from the submatches; nil means
	// "first capture group".
	ident func(m []string) string
}

func (r rule) identifier(m []string) string {
	if r.ident != nil {
		return r.ident(m)
	}
	return m[1]
}

// packWorkday turns (full host, site) submatches into the packed
// host|tenant|site token.
func packWorkday(m []string) string {
	id := model.Identifier{
		Host:   m[1] + ".myworkdayjobs.com",
		Tenant: strings.SplitN(m[1], ".", 2)[0],
		Site:   m[2],
	}
	return id.PackWorkday()
}

// rules is the ordered fingerprint table. Order is the backend priority: the
// first rule that matches anywhere on the page wins, so a page carrying both
// a Lever and a Workable embed resolves to Lever.
var rules = []rule{
	{backend: model.BackendGreenhouse, re: regexp.MustCompile(`boards\.greenhouse\.io/embed/job_board/js\?for=([a-zA-Z0-9_-]+)`)},
	{backend: model.BackendGreenhouse, re: regexp.MustCompile(`boards\.greenhouse\.io/([a-zA-Z0-9_-]+)/jobs`)},
	{backend: model.BackendGreenhouse, re: regexp.MustCompile(`boards\.greenhouse\.io/([a-zA-Z0-9_-]+)`)},
	{backend: model.BackendLever, re: regexp.MustCompile(`jobs\.eu\.lever\.co/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendLever, re: regexp.MustCompile(`jobs\.lever\.co/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendLever, re: regexp.MustCompile(`api\.lever\.co/v0/postings/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendWorkable, re: regexp.MustCompile(`apply\.workable\.com/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendWorkable, re: regexp.MustCompile(`workable\.com/api/[^"]*accounts/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendAshby, re: regexp.MustCompile(`jobs\.ashbyhq\.com/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendAshby, re: regexp.MustCompile(`api\.ashbyhq\.com/posting-api/job-board/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendRecruitee, re: regexp.MustCompile(`([A-Za-z0-9_-]+)\.recruitee\.com`)},
	{backend: model.BackendPersonio, re: regexp.MustCompile(`([A-Za-z0-9_-]+)\.jobs\.personio\.(?:de|com)`)},
	{backend: model.BackendBreezy, re: regexp.MustCompile(`([A-Za-z0-9_-]+)\.breezy\.hr`)},
	{backend: model.BackendWorkday, re: regexp.MustCompile(`([A-Za-z0-9.-]+)\.myworkdayjobs\.com/[^\s"']*?/([A-Za-z0-9_-]+)`), ident: packWorkday},
	{backend: model.BackendBambooHR, re: regexp.MustCompile(`([A-Za-z0-9_-]+)\.bamboohr\.com`)},
	{backend: model.BackendSmartRecruiters, re: regexp.MustCompile(`careers\.smartrecruiters\.com/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendSmartRecruiters, re: regexp.MustCompile(`jobs\.smartrecruiters\.com/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendWellfound, re: regexp.MustCompile(`wellfound\.com/company/([A-Za-z0-9_-]+)/jobs`)},
	{backend: model.BackendDeel, re: regexp.MustCompile(`jobs\.deel\.com/job-boards/([A-Za-z0-9_-]+)`)},
	{backend: model.BackendKeka, re: regexp.MustCompile(`([A-Za-z0-9_-]+)\.keka\.com/careers`)},
	{backend: model.BackendPolymer, re: regexp.MustCompile(`jobs\.polymer\.co/([A-Za-z0-9_-]+)`)},
}

// Sniffer probes a company's own site for ATS fingerprints.
type Sniffer struct {
	c *adapter.Client
}

func NewSniffer(c *adapter.Client) *Sniffer { return &Sniffer{c: c} }

// Discover probes the candidate career paths under domain and fingerprints
// the first page that answers 2xx. It does not keep probing once a page has
// been fetched successfully, even if no fingerprint matches on it.
func (s *Sniffer) Discover(ctx context.Context, domain string) (model.Backend, model.Identifier, bool) {
	if domain == "" {
		return model.BackendNone, model.Identifier{}, false
	}
	for _, path := range careerPaths {
		url := fmt.Sprintf("https://%s%s", domain, path)
		body, err := s.fetch(ctx, url)
		if err != nil {
			continue
		}
		return Fingerprint(body)
	}
	return model.BackendNone, model.Identifier{}, false
}

// FindCareersPage returns the first candidate path under domain that answers
// 2xx, for the generic fallback extractors.
func (s *Sniffer) FindCareersPage(ctx context.Context, domain string) (string, bool) {
	if domain == "" {
		return "", false
	}
	for _, path := range careerPaths {
		url := fmt.Sprintf("https://%s%s", domain, path)
		if _, err := s.fetch(ctx, url); err == nil {
			return url, true
		}
	}
	return "", false
}

func (s *Sniffer) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, sniffTimeout)
	defer cancel()
	return s.c.GetRaw(ctx, url)
}

// Fingerprint runs the rule table over the raw markup and then over every
// anchor/script/iframe href/src/data-src attribute, in document order.
func Fingerprint(markup []byte) (model.Backend, model.Identifier, bool) {
	if b, id, ok := match(string(markup)); ok {
		return b, id, true
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return model.BackendNone, model.Identifier{}, false
	}
	var (
		backend model.Backend
		ident   model.Identifier
		found   bool
	)
	doc.Find("a, script, iframe").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range []string{"href", "src", "data-src"} {
			val, ok := sel.Attr(attr)
			if !ok || val == "" {
				continue
			}
			if b, id, ok := match(val); ok {
				backend, ident, found = b, id, true
				return false
			}
		}
		return true
	})
	return backend, ident, found
}

func match(text string) (model.Backend, model.Identifier, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		token := r.identifier(m)
		if token == "" {
			continue
		}
		if r.backend == model.BackendWorkday {
			return r.backend, model.UnpackWorkday(token), true
		}
		return r.backend, model.SlugID(token), true
	}
	return model.BackendNone, model.Identifier{}, false
}
