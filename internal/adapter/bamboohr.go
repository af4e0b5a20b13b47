package adapter

import (
	"context"
	"fmt"

	"github.com/jobsift/jobsift/internal/model"
)

type bambooJob struct {
	JobTitle    string `json:"jobTitle"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ApplyURL    string `json:"applyUrl"`
}

// BambooHR fetches the JSON job list from a company's bamboohr.com
// subdomain. Accounts that serve an HTML page here decode as garbage and
// come back empty, which is the intended silent-failure behavior.
type BambooHR struct {
	c *Client
}

func NewBambooHR(c *Client) *BambooHR { return &BambooHR{c: c} }

func (a *BambooHR) Kind() model.Backend { return model.BackendBambooHR }

func (a *BambooHR) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.bamboohr.com/jobs/list", id.Slug)
}

func (a *BambooHR) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var postings []bambooJob
	if err := a.c.GetJSON(ctx, url, &postings); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(postings))
	for _, j := range clip(postings, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       firstNonEmpty(j.JobTitle, j.Title),
			Location:    j.Location,
			Type:        j.Department,
			Description: shortDescription(j.Description),
			URL:         firstNonEmpty(j.Link, j.ApplyURL),
			SourceURL:   url,
		})
	}
	return jobs
}
