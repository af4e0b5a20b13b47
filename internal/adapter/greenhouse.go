package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

const (
	greenhouseBaseURL  = "https://boards-api.greenhouse.io/v1/boards"
	greenhouseBoardURL = "https://boards.greenhouse.io"
)

type greenhouseJob struct {
	Title       string `json:"title"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Content     string `json:"content"`
	AbsoluteURL string `json:"absolute_url"`
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// Greenhouse fetches postings from the public boards API, with a scrape of
// the hosted board page as fallback.
type Greenhouse struct {
	c *Client
}

func NewGreenhouse(c *Client) *Greenhouse { return &Greenhouse{c: c} }

func (a *Greenhouse) Kind() model.Backend { return model.BackendGreenhouse }

func (a *Greenhouse) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/jobs", greenhouseBaseURL, id.Slug)
}

func (a *Greenhouse) FallbackEndpoint(id model.Identifier) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", greenhouseBoardURL, id.Slug)
}

func (a *Greenhouse) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var resp greenhouseResponse
	if err := a.c.GetJSON(ctx, url, &resp); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(resp.Jobs))
	for _, j := range clip(resp.Jobs, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       j.Title,
			Location:    j.Location.Name,
			Description: shortDescription(j.Content),
			URL:         j.AbsoluteURL,
			SourceURL:   url,
		})
	}
	return jobs
}

// FetchHTML scrapes boards.greenhouse.io for boards whose API token differs
// from the public board slug.
func (a *Greenhouse) FetchHTML(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.FallbackEndpoint(id)
	doc, err := a.c.GetDoc(ctx, url)
	if err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	var jobs []model.JobPosting
	doc.Find("div.opening a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")
		jobURL := absoluteURL(greenhouseBoardURL, href)

		// Location sits beside the anchor inside the opening card.
		loc := strings.TrimSpace(s.Closest("div.opening").Find(".location").First().Text())

		jobs = append(jobs, model.JobPosting{
			Title:     title,
			Location:  loc,
			URL:       jobURL,
			SourceURL: url,
		})
		return len(jobs) < limit
	})
	return clip(jobs, limit)
}
