package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

const wellfoundBaseURL = "https://wellfound.com"

// Wellfound scrapes a company's wellfound.com jobs page. There is no public
// API; postings are anchors whose href carries both the company slug and a
// /jobs segment.
type Wellfound struct {
	c *Client
}

func NewWellfound(c *Client) *Wellfound { return &Wellfound{c: c} }

func (a *Wellfound) Kind() model.Backend { return model.BackendWellfound }

func (a *Wellfound) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/company/%s/jobs", wellfoundBaseURL, id.Slug)
}

func (a *Wellfound) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)
	doc, err := a.c.GetDoc(ctx, url)
	if err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	seen := make(map[string]struct{})
	var jobs []model.JobPosting
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return true
		}
		if !strings.Contains(href, "/jobs") || !strings.Contains(href, id.Slug) {
			return true
		}
		jobURL := absoluteURL(wellfoundBaseURL, href)
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
	return clip(jobs, limit)
}
