package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

var breezyLocationClass = regexp.MustCompile(`(?i)location|city|office`)

// Breezy scrapes a company's breezy.hr board page. Positions are anchors
// linking to /p/{slug}; location metadata sits in a sibling element.
type Breezy struct {
	c *Client
}

func NewBreezy(c *Client) *Breezy { return &Breezy{c: c} }

func (a *Breezy) Kind() model.Backend { return model.BackendBreezy }

func (a *Breezy) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.breezy.hr/", id.Slug)
}

func (a *Breezy) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)
	doc, err := a.c.GetDoc(ctx, url)
	if err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	base := fmt.Sprintf("https://%s.breezy.hr", id.Slug)
	var jobs []model.JobPosting
	doc.Find("a[href*='/p/']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")

		loc := ""
		s.Parent().Find("[class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if class, ok := el.Attr("class"); ok && breezyLocationClass.MatchString(class) {
				loc = strings.TrimSpace(el.Text())
				return false
			}
			return true
		})

		jobs = append(jobs, model.JobPosting{
			Title:     title,
			Location:  loc,
			URL:       absoluteURL(base, href),
			SourceURL: url,
		})
		return len(jobs) < limit
	})
	return clip(jobs, limit)
}
