package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

const deelBaseURL = "https://jobs.deel.com"

// Deel scrapes a jobs.deel.com job board. Board index links (/job-boards/...)
// are skipped; everything else that looks like a posting anchor is kept.
type Deel struct {
	c *Client
}

func NewDeel(c *Client) *Deel { return &Deel{c: c} }

func (a *Deel) Kind() model.Backend { return model.BackendDeel }

func (a *Deel) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/job-boards/%s/", deelBaseURL, id.Slug)
}

func (a *Deel) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	urls := []string{
		fmt.Sprintf("%s/job-boards/%s/", deelBaseURL, id.Slug),
		fmt.Sprintf("%s/job-boards/%s", deelBaseURL, id.Slug),
	}
	for _, url := range urls {
		jobs, err := a.scrape(ctx, url, limit)
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

func (a *Deel) scrape(ctx context.Context, url string, limit int) ([]model.JobPosting, error) {
	doc, err := a.c.GetDoc(ctx, url)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var jobs []model.JobPosting
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return true
		}
		if strings.Contains(href, "/job-boards/") {
			return true
		}
		if !strings.Contains(href, "/jobs") &&
			!strings.Contains(href, "/job") &&
			!strings.Contains(href, "/positions") &&
			!strings.Contains(href, "/careers") &&
			!strings.HasPrefix(href, "/") {
			return true
		}
		jobURL := absoluteURL(deelBaseURL, href)
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
