package adapter

import (
	"context"
	"fmt"

	"github.com/jobsift/jobsift/internal/model"
)

const ashbyBaseURL = "https://api.ashbyhq.com/posting-api/job-board"

type ashbyJob struct {
	Title            string `json:"title"`
	Location         string `json:"location"`
	EmploymentType   string `json:"employmentType"`
	DescriptionPlain string `json:"descriptionPlain"`
	JobURL           string `json:"jobUrl"`
	ApplyURL         string `json:"applyUrl"`
}

type ashbyResponse struct {
	Jobs []ashbyJob `json:"jobs"`
}

// Ashby fetches postings from the Ashby public job-board API.
type Ashby struct {
	c *Client
}

func NewAshby(c *Client) *Ashby { return &Ashby{c: c} }

func (a *Ashby) Kind() model.Backend { return model.BackendAshby }

func (a *Ashby) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?includeCompensation=true", ashbyBaseURL, id.Slug)
}

func (a *Ashby) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var resp ashbyResponse
	if err := a.c.GetJSON(ctx, url, &resp); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(resp.Jobs))
	for _, j := range clip(resp.Jobs, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       j.Title,
			Location:    j.Location,
			Type:        j.EmploymentType,
			Description: shortDescription(j.DescriptionPlain),
			URL:         firstNonEmpty(j.JobURL, j.ApplyURL),
			SourceURL:   url,
		})
	}
	return jobs
}
