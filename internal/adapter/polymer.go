package adapter

import (
	"context"
	"fmt"

	"github.com/jobsift/jobsift/internal/model"
)

const polymerBaseURL = "https://api.polymer.co/v1/hire/organizations"

type polymerJob struct {
	Title             string `json:"title"`
	DisplayLocation   string `json:"display_location"`
	RemotenessPretty  string `json:"remoteness_pretty"`
	KindPretty        string `json:"kind_pretty"`
	JobPostURL        string `json:"job_post_url"`
	JobApplicationURL string `json:"job_application_description_url"`
}

type polymerResponse struct {
	Items []polymerJob `json:"items"`
}

// Polymer fetches postings from the Polymer hire API.
type Polymer struct {
	c *Client
}

func NewPolymer(c *Client) *Polymer { return &Polymer{c: c} }

func (a *Polymer) Kind() model.Backend { return model.BackendPolymer }

func (a *Polymer) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/jobs", polymerBaseURL, id.Slug)
}

func (a *Polymer) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var resp polymerResponse
	if err := a.c.GetJSON(ctx, url, &resp); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(resp.Items))
	for _, j := range clip(resp.Items, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:     j.Title,
			Location:  firstNonEmpty(j.DisplayLocation, j.RemotenessPretty),
			Type:      j.KindPretty,
			URL:       firstNonEmpty(j.JobPostURL, j.JobApplicationURL),
			SourceURL: url,
		})
	}
	return jobs
}
