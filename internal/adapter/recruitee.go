package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobsift/jobsift/internal/model"
)

// recruiteeLocation tolerates the two shapes the offers API serves: a plain
// string, or an object with city/location_str/country fields.
type recruiteeLocation struct {
	Text string
}

func (l *recruiteeLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Text = s
		return nil
	}
	var obj struct {
		City        string `json:"city"`
		LocationStr string `json:"location_str"`
		Country     string `json:"country"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	l.Text = firstNonEmpty(obj.City, obj.LocationStr, obj.Country)
	return nil
}

type recruiteeOffer struct {
	Title          string            `json:"title"`
	Name           string            `json:"name"`
	Location       recruiteeLocation `json:"location"`
	City           string            `json:"city"`
	Kind           string            `json:"kind"`
	EmploymentType string            `json:"employment_type"`
	Description    string            `json:"description"`
	URL            string            `json:"url"`
	Slug           string            `json:"slug"`
	ID             json.Number       `json:"id"`
}

type recruiteeResponse struct {
	Offers []recruiteeOffer `json:"offers"`
	Jobs   []recruiteeOffer `json:"jobs"`
}

// Recruitee fetches offers from a company's recruitee.com subdomain.
type Recruitee struct {
	c *Client
}

func NewRecruitee(c *Client) *Recruitee { return &Recruitee{c: c} }

func (a *Recruitee) Kind() model.Backend { return model.BackendRecruitee }

func (a *Recruitee) Endpoint(id model.Identifier, limit int) string {
	if id.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.recruitee.com/api/offers/", id.Slug)
}

func (a *Recruitee) Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting {
	if id.Slug == "" {
		return nil
	}
	url := a.Endpoint(id, limit)

	var resp recruiteeResponse
	if err := a.c.GetJSON(ctx, url, &resp); err != nil {
		a.c.logFault(a.Kind(), url, err)
		return nil
	}
	offers := resp.Offers
	if len(offers) == 0 {
		offers = resp.Jobs
	}

	jobs := make([]model.JobPosting, 0, len(offers))
	for _, o := range clip(offers, limit) {
		jobURL := o.URL
		if jobURL == "" {
			if slug := firstNonEmpty(o.Slug, o.ID.String()); slug != "" {
				jobURL = fmt.Sprintf("https://%s.recruitee.com/o/%s", id.Slug, slug)
			}
		}
		jobs = append(jobs, model.JobPosting{
			Title:       firstNonEmpty(o.Title, o.Name),
			Location:    firstNonEmpty(o.Location.Text, o.City),
			Type:        firstNonEmpty(o.Kind, o.EmploymentType),
			Description: shortDescription(o.Description),
			URL:         jobURL,
			SourceURL:   url,
		})
	}
	return jobs
}
