package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

const (
	leverBaseURL   = "https://api.lever.co/v0/postings"
	leverEUBaseURL = "https://api.eu.lever.co/v0/postings"
	leverBoardURL  = "https://jobs.lever.co"
)

// leverLocation tolerates both shapes the postings API serves: a plain
// string, or a list of tagged entries whose text fields are joined.
type leverLocation struct {
	Text string
}

func (l *leverLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Text = s
		return nil
	}
	var tagged []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	parts := make([]string, 0, len(tagged))
	for _, t := range tagged {
		parts = append(parts, t.Text)
	}
	l.Text = strings.Join(parts, ", ")
	return nil
}

type leverCategories struct {
	Location   leverLocation `json:"location"`
	Commitment string        `json:"commitment"`
}

type leverJob struct {
	Text        string          `json:"text"`
	Description string          `json:"description"`
	Categories  leverCategories `json:"categories"`
	HostedURL   string          `json:"hostedUrl"`
	ApplyURL    string          `json:"applyUrl"`
}

// Lever fetches postings from the Lever public API, falling back to the EU
// region and finally to the hosted board page.
type Lever struct {
	c *Client
}

func NewLever(c *Client) *Lever { return &Lever{c: c} }

func (a *Lever) Kind() model.Backend { return model.BackendLever }

func (a *Lever) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", leverBaseURL, id.Slug)
}

func (a *Lever) FallbackEndpoint(id model.Identifier) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", leverBoardURL, id.Slug)
}

func (a *Lever) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	jobs, err := a.fetch(ctx, id.Slug, limit)
	if err != nil {
		a.c.logFault(a.Kind(), a.Endpoint(id, limit), err)
		return nil
	}
	return jobs
}

func (a *Lever) fetch(ctx context.Context, slug string, limit int) ([]model.JobPosting, error) {
	url := fmt.Sprintf("%s/%s?mode=json&limit=%d", leverBaseURL, slug, limit)
	used := url

	var postings []leverJob
	if err := a.c.GetJSON(ctx, url, &postings); err != nil {
		// Boards hosted in the EU region 404 on the US API host.
		alt := fmt.Sprintf("%s/%s?mode=json&limit=%d", leverEUBaseURL, slug, limit)
		if err2 := a.c.GetJSON(ctx, alt, &postings); err2 != nil {
			return nil, err
		}
		used = alt
	}

	jobs := make([]model.JobPosting, 0, len(postings))
	for _, p := range clip(postings, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       p.Text,
			Location:    p.Categories.Location.Text,
			Type:        p.Categories.Commitment,
			Description: shortDescription(p.Description),
			URL:         firstNonEmpty(p.HostedURL, p.ApplyURL),
			SourceURL:   used,
		})
	}
	return jobs, nil
}

// FetchHTML scrapes the hosted jobs.lever.co board page. Used when both API
// regions come back empty for a slug that still hosts a public board.
func (a *Lever) FetchHTML(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
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
	doc.Find("div.posting").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("h5").First().Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("a.posting-title").First().Text())
		}
		loc := strings.TrimSpace(s.Find("span.posting-location").First().Text())

		link := s.Find("a[data-qa='posting-name']").First()
		if link.Length() == 0 {
			link = s.Find("a.posting-apply").First()
		}
		if link.Length() == 0 {
			link = s.Find("a").First()
		}
		href, _ := link.Attr("href")
		jobURL := ""
		if href != "" {
			// Board-relative hrefs already carry the slug prefix.
			jobURL = absoluteURL(leverBoardURL, href)
		}

		if title != "" || jobURL != "" {
			jobs = append(jobs, model.JobPosting{
				Title:     title,
				Location:  loc,
				URL:       jobURL,
				SourceURL: url,
			})
		}
		return len(jobs) < limit
	})

	// Some themes drop the posting cards entirely; fall back to bare anchors.
	if len(jobs) == 0 {
		doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			text := strings.TrimSpace(s.Text())
			if href == "" || text == "" {
				return true
			}
			if !strings.Contains(href, id.Slug) && !strings.HasPrefix(href, "/") {
				return true
			}
			jobs = append(jobs, model.JobPosting{
				Title:     text,
				URL:       absoluteURL(leverBoardURL, href),
				SourceURL: url,
			})
			return len(jobs) < limit
		})
	}
	return clip(jobs, limit)
}
