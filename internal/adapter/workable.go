package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobsift/jobsift/internal/model"
)

const workableBaseURL = "https://apply.workable.com/api/v1/widget/accounts"

type workableJob struct {
	Title           string `json:"title"`
	City            string `json:"city"`
	Location        string `json:"location"`
	EmploymentType  string `json:"employment_type"`
	FullDescription string `json:"full_description"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	ApplicationURL  string `json:"application_url"`
}

// Workable fetches postings from the Workable widget API. The payload is
// either an object with a jobs array or a bare array, depending on account
// configuration.
type Workable struct {
	c *Client
}

func NewWorkable(c *Client) *Workable { return &Workable{c: c} }

func (a *Workable) Kind() model.Backend { return model.BackendWorkable }

func (a *Workable) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", workableBaseURL, id.Slug)
}

func (a *Workable) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	data, err := a.c.GetRaw(ctx, url)
	if err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	var wrapped struct {
		Jobs []workableJob `json:"jobs"`
	}
	postings := wrapped.Jobs
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Jobs == nil {
		var bare []workableJob
		if err := json.Unmarshal(data, &bare); err != nil {
			a.c.logFault(a.Kind(), url, fmt.Errorf("decode: %w", err))
			return nil
		}
		postings = bare
	} else {
		postings = wrapped.Jobs
	}

	jobs := make([]model.JobPosting, 0, len(postings))
	for _, j := range clip(postings, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       j.Title,
			Location:    firstNonEmpty(j.City, j.Location),
			Type:        j.EmploymentType,
			Description: shortDescription(firstNonEmpty(j.FullDescription, j.Description)),
			URL:         firstNonEmpty(j.URL, j.ApplicationURL),
			SourceURL:   url,
		})
	}
	return jobs
}
