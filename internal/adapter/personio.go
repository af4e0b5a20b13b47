package adapter

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jobsift/jobsift/internal/model"
)

// personioFeed matches the <position> children of the Personio XML feed,
// regardless of the feed's root element name.
type personioFeed struct {
	Positions []personioPosition `xml:"position"`
}

type personioPosition struct {
	ID             string `xml:"id"`
	Name           string `xml:"name"`
	Office         string `xml:"office"`
	City           string `xml:"city"`
	Location       string `xml:"location"`
	EmploymentType string `xml:"employmentType"`
	Schedule       string `xml:"schedule"`
	Description    string `xml:"description"`
}

// Personio consumes the XML job feed exposed on a company's
// jobs.personio.de subdomain. This is the only non-JSON API backend.
type Personio struct {
	c *Client
}

func NewPersonio(c *Client) *Personio { return &Personio{c: c} }

func (a *Personio) Kind() model.Backend { return model.BackendPersonio }

func (a *Personio) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.jobs.personio.de/xml?language=en", id.Slug)
}

func (a *Personio) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	data, err := a.c.GetRaw(ctx, url)
	if err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	var feed personioFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		a.c.logFault(a.Kind(), url, fmt.Errorf("decode: %w", err))
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(feed.Positions))
	for _, p := range clip(feed.Positions, limit) {
		jobURL := ""
		if pid := strings.TrimSpace(p.ID); pid != "" {
			jobURL = fmt.Sprintf("https://%s.jobs.personio.de/job/%s", id.Slug, pid)
		}
		jobs = append(jobs, model.JobPosting{
			Title:       strings.TrimSpace(p.Name),
			Location:    strings.TrimSpace(firstNonEmpty(p.Office, p.City, p.Location)),
			Type:        firstNonEmpty(p.EmploymentType, p.Schedule),
			Description: shortDescription(p.Description),
			URL:         jobURL,
			SourceURL:   url,
		})
	}
	return jobs
}
