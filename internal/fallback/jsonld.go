// Package fallback holds the two last-resort extractors used when no known
// ATS backend could be identified for a company: schema.org JobPosting
// structured data, then heuristic DOM scraping.
package fallback

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/adapter"
	"github.com/jobsift/jobsift/internal/model"
)

// Extractor runs the generic extractors against a careers page.
type Extractor struct {
	c *adapter.Client
}

func NewExtractor(c *adapter.Client) *Extractor { return &Extractor{c: c} }

// jsonldPosting is the subset of a schema.org JobPosting block we map.
type jsonldPosting struct {
	Type           string          `json:"@type"`
	Title          string          `json:"title"`
	JobLocation    json.RawMessage `json:"jobLocation"`
	EmploymentType string          `json:"employmentType"`
	URL            string          `json:"url"`
	Description    string          `json:"description"`
}

type jsonldAddress struct {
	Address struct {
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
		AddressCountry  string `json:"addressCountry"`
	} `json:"address"`
}

// FetchStructured parses every ld+json script block on pageURL and keeps the
// entries typed as job postings.
func (e *Extractor) FetchStructured(ctx context.Context, pageURL string, limit int) []model.JobPosting {
	doc, err := e.c.GetDoc(ctx, pageURL)
	if err != nil {
		return nil
	}
	return structuredFromDoc(doc, pageURL, limit)
}

func structuredFromDoc(doc *goquery.Document, pageURL string, limit int) []model.JobPosting {
	var jobs []model.JobPosting
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(s.Text())

		// A block may hold one posting or a list of them.
		var entries []jsonldPosting
		var single jsonldPosting
		if err := json.Unmarshal(raw, &single); err == nil && single.Type != "" {
			entries = []jsonldPosting{single}
		} else if err := json.Unmarshal(raw, &entries); err != nil {
			return true
		}

		for _, entry := range entries {
			if entry.Type != "JobPosting" && entry.Type != "jobPosting" {
				continue
			}
			url := entry.URL
			if url == "" {
				url = pageURL
			}
			jobs = append(jobs, model.JobPosting{
				Title:       entry.Title,
				Location:    jsonldLocation(entry.JobLocation),
				Type:        entry.EmploymentType,
				Description: adapter.ShortDescription(entry.Description),
				URL:         url,
				SourceURL:   pageURL,
			})
			if len(jobs) >= limit {
				return false
			}
		}
		return true
	})
	return jobs
}

// jsonldLocation joins locality, region and country from the first
// jobLocation entry, which may be a single object or a list.
func jsonldLocation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var loc jsonldAddress
	var locs []jsonldAddress
	if err := json.Unmarshal(raw, &locs); err == nil && len(locs) > 0 {
		loc = locs[0]
	} else if err := json.Unmarshal(raw, &loc); err != nil {
		return ""
	}
	var parts []string
	for _, p := range []string{loc.Address.AddressLocality, loc.Address.AddressRegion, loc.Address.AddressCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
