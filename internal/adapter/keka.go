package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

// Keka scrapes a company's keka.com careers page, retrying with a trailing
// slash because some tenants only serve one of the two forms.
type Keka struct {
	c *Client
}

func NewKeka(c *Client) *Keka { return &Keka{c: c} }

func (a *Keka) Kind() model.Backend { return model.BackendKeka }

func (a *Keka) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.keka.com/careers", id.Slug)
}

func (a *Keka) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	base := fmt.Sprintf("https://%s.keka.com", id.Slug)
	for _, url := range []string{base + "/careers", base + "/careers/"} {
		jobs, err := a.scrape(ctx, base, url, limit)
		if err != nil {
			a.c.logFault(a.Kind(), url, err)
			continue
		}
		if len(jobs) > 0 {
			return jobs
		}
	}
	return nil
}

func (a *Keka) scrape(ctx context.Context, base, url string, limit int) ([]model.JobPosting, error) {
	doc, err := a.c.GetDoc(ctx, url)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var jobs []model.JobPosting
	doc.Find("a[href*='/careers/jobdetails/'], a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return true
		}
		if !strings.Contains(href, "/careers/jobdetails/") &&
			!strings.Contains(href, "/job") &&
			!strings.Contains(href, "/careers/") &&
			!strings.HasPrefix(href, "/") &&
			!strings.HasPrefix(href, "http") {
			return true
		}
		jobURL := absoluteURL(base, href)
		if _, dup := seen[jobURL]; dup {
			return true
		}
		seen[jobURL] = struct{}{}

		cardText := s.Closest("li, article, div").Text()
		jobs = append(jobs, model.JobPosting{
			Title:     text,
			Location:  labeledLocation(cardText),
			Type:      labeledType(cardText),
			URL:       jobURL,
			SourceURL: url,
		})
		return len(jobs) < limit
	})
	return clip(jobs, limit), nil
}
