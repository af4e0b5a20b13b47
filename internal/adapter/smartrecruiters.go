package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobsift/jobsift/internal/model"
)

const smartRecruitersBaseURL = "https://api.smartrecruiters.com/v1/companies"

type smartRecruitersPosting struct {
	Name     string `json:"name"`
	Location struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	TypeOfEmployment struct {
		Label string `json:"label"`
	} `json:"typeOfEmployment"`
	Ref      string `json:"ref"`
	ApplyURL string `json:"applyUrl"`
}

type smartRecruitersResponse struct {
	Content []smartRecruitersPosting `json:"content"`
}

// SmartRecruiters fetches postings from the public company postings API.
// The location string is composed from city/region/country parts.
type SmartRecruiters struct {
	c *Client
}

func NewSmartRecruiters(c *Client) *SmartRecruiters { return &SmartRecruiters{c: c} }

func (a *SmartRecruiters) Kind() model.Backend { return model.BackendSmartRecruiters }

func (a *SmartRecruiters) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/postings?limit=%d", smartRecruitersBaseURL, id.Slug, limit)
}

func (a *SmartRecruiters) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var resp smartRecruitersResponse
	if err := a.c.GetJSON(ctx, url, &resp); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(resp.Content))
	for _, p := range clip(resp.Content, limit) {
		var parts []string
		for _, part := range []string{p.Location.City, p.Location.Region, p.Location.Country} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		jobs = append(jobs, model.JobPosting{
			Title:     p.Name,
			Location:  strings.Join(parts, ", "),
			Type:      p.TypeOfEmployment.Label,
			URL:       firstNonEmpty(p.Ref, p.ApplyURL),
			SourceURL: url,
		})
	}
	return jobs
}
