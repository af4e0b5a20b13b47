package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobsift/jobsift/internal/model"
)

func TestAshbyFetch(t *testing.T) {
	payload := `{"jobs": [
		{
			"title": "Protocol Engineer",
			"location": "Remote - Global",
			"employmentType": "FullTime",
			"descriptionPlain": "Build consensus things.",
			"jobUrl": "https://jobs.ashbyhq.com/acme/1"
		},
		{
			"title": "Counsel",
			"location": "New York",
			"applyUrl": "https://jobs.ashbyhq.com/acme/2/apply"
		}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posting-api/job-board/acme" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("includeCompensation") != "true" {
			t.Errorf("includeCompensation query = %q", r.URL.Query().Get("includeCompensation"))
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewAshby(newTestClient(srv))
	jobs := a.Fetch(context.Background(), model.SlugID("acme"), 50)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Protocol Engineer" || jobs[0].Location != "Remote - Global" {
		t.Errorf("first job = %+v", jobs[0])
	}
	if jobs[0].Type != "FullTime" || jobs[0].Description != "Build consensus things." {
		t.Errorf("first job = %+v", jobs[0])
	}
	if jobs[0].URL != "https://jobs.ashbyhq.com/acme/1" {
		t.Errorf("url = %q", jobs[0].URL)
	}
	// applyUrl fills in when jobUrl is absent.
	if jobs[1].URL != "https://jobs.ashbyhq.com/acme/2/apply" {
		t.Errorf("apply url = %q", jobs[1].URL)
	}
}
