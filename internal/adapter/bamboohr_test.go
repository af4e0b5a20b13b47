package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobsift/jobsift/internal/model"
)

func TestBambooHRFetch(t *testing.T) {
	payload := `[
		{
			"jobTitle": "HR Generalist",
			"location": "Salt Lake City, UT",
			"department": "People",
			"link": "https://acme.bamboohr.com/jobs/view.php?id=7"
		},
		{
			"title": "Accountant",
			"location": "Remote",
			"applyUrl": "https://acme.bamboohr.com/jobs/view.php?id=8"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Original-Host") != "acme.bamboohr.com" {
			t.Errorf("unexpected host %s", r.Header.Get("X-Original-Host"))
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewBambooHR(newTestClient(srv))
	jobs := a.Fetch(context.Background(), model.SlugID("acme"), 50)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "HR Generalist" || jobs[0].Location != "Salt Lake City, UT" || jobs[0].Type != "People" {
		t.Errorf("first job = %+v", jobs[0])
	}
	// Some tenants name the fields title/applyUrl instead of jobTitle/link.
	if jobs[1].Title != "Accountant" {
		t.Errorf("title fallback = %q", jobs[1].Title)
	}
	if jobs[1].URL != "https://acme.bamboohr.com/jobs/view.php?id=8" {
		t.Errorf("url fallback = %q", jobs[1].URL)
	}
}

func TestBambooHRFetchHTMLBody(t *testing.T) {
	// Accounts that serve an HTML careers page on the list endpoint decode
	// as garbage and must come back empty.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>careers</body></html>"))
	}))
	defer srv.Close()

	a := NewBambooHR(newTestClient(srv))
	if jobs := a.Fetch(context.Background(), model.SlugID("acme"), 50); jobs != nil {
		t.Fatalf("expected nil on HTML body, got %+v", jobs)
	}
}
