package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobsift/jobsift/internal/model"
)

func TestSmartRecruitersFetch(t *testing.T) {
	payload := `{"content": [
		{
			"name": "Account Executive",
			"location": {"city": "London", "region": "England", "country": "GB"},
			"typeOfEmployment": {"label": "Full-time"},
			"ref": "https://api.smartrecruiters.com/v1/companies/acme/postings/9"
		},
		{
			"name": "Intern",
			"location": {"country": "DE"},
			"applyUrl": "https://jobs.smartrecruiters.com/acme/10"
		}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/companies/acme/postings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "50" {
			t.Errorf("limit query = %q", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewSmartRecruiters(newTestClient(srv))
	jobs := a.Fetch(context.Background(), model.SlugID("acme"), 50)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(jobs))
	}
	if jobs[0].Location != "London, England, GB" {
		t.Errorf("joined location = %q", jobs[0].Location)
	}
	if jobs[0].Type != "Full-time" {
		t.Errorf("type = %q", jobs[0].Type)
	}
	// Sparse locations join only the present parts.
	if jobs[1].Location != "DE" {
		t.Errorf("sparse location = %q", jobs[1].Location)
	}
	if jobs[1].URL != "https://jobs.smartrecruiters.com/acme/10" {
		t.Errorf("applyUrl fallback = %q", jobs[1].URL)
	}
}
