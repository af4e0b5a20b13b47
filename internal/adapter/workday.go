package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/jobsift/jobsift/internal/model"
)

// workdayTimeout stretches the default per-call budget: the cxs listing
// endpoint is noticeably slower than the other backends.
const workdayTimeout = 12 * time.Second

type workdayRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type workdayPosting struct {
	Title          string `json:"title"`
	LocationsText  string `json:"locationsText"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ExternalURL    string `json:"externalUrl"`
	AbsoluteJobURL string `json:"absoluteJobUrl"`
}

type workdayResponse struct {
	JobPostings []workdayPosting `json:"jobPostings"`
}

// Workday fetches postings from a tenant's cxs listing endpoint. The
// identifier is a host/tenant/site triple rather than a single slug.
type Workday struct {
	c *Client
}

func NewWorkday(c *Client) *Workday { return &Workday{c: c} }

func (a *Workday) Kind() model.Backend { return model.BackendWorkday }

func (a *Workday) Endpoint(id model.Identifier, limit int) string {
	if id.Host == "" || id.Tenant == "" || id.Site == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/wday/cxs/%s/%s/jobs", id.Host, id.Tenant, id.Site)
}

func (a *Workday) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	url := a.Endpoint(id, limit)
	if url == "" {
		return nil
	}

	body := workdayRequest{
		AppliedFacets: map[string]any{},
		Limit:         limit,
		Offset:        0,
		SearchText:    "",
	}
	var resp workdayResponse
	if err := a.c.PostJSON(ctx, url, body, &resp, workdayTimeout); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}

	jobs := make([]model.JobPosting, 0, len(resp.JobPostings))
	for _, p := range clip(resp.JobPostings, limit) {
		jobs = append(jobs, model.JobPosting{
			Title:       p.Title,
			Location:    firstNonEmpty(p.LocationsText, p.Location),
			Description: shortDescription(p.Description),
			URL:         firstNonEmpty(p.ExternalURL, p.AbsoluteJobURL),
			SourceURL:   url,
		})
	}
	return jobs
}
