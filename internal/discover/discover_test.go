package discover

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobsift/jobsift/internal/adapter"
	"github.com/jobsift/jobsift/internal/model"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name        string
		markup      string
		wantBackend model.Backend
		wantSlug    string
	}{
		{
			"greenhouse embed",
			`<script src="https://boards.greenhouse.io/embed/job_board/js?for=acme"></script>`,
			model.BackendGreenhouse, "acme",
		},
		{
			"greenhouse board link",
			`<a href="https://boards.greenhouse.io/acme/jobs/1">jobs</a>`,
			model.BackendGreenhouse, "acme",
		},
		{
			"lever board",
			`see https://jobs.lever.co/acme for open roles`,
			model.BackendLever, "acme",
		},
		{
			"lever eu board",
			`<iframe src="https://jobs.eu.lever.co/acme"></iframe>`,
			model.BackendLever, "acme",
		},
		{
			"workable",
			`<a href="https://apply.workable.com/acme/">apply</a>`,
			model.BackendWorkable, "acme",
		},
		{
			"ashby",
			`<a href="https://jobs.ashbyhq.com/acme">roles</a>`,
			model.BackendAshby, "acme",
		},
		{
			"recruitee",
			`<a href="https://acme.recruitee.com">careers</a>`,
			model.BackendRecruitee, "acme",
		},
		{
			"personio",
			`<a href="https://acme.jobs.personio.de/">openings</a>`,
			model.BackendPersonio, "acme",
		},
		{
			"breezy",
			`<a href="https://acme.breezy.hr/p/123">role</a>`,
			model.BackendBreezy, "acme",
		},
		{
			"bamboohr",
			`<iframe src="https://acme.bamboohr.com/jobs/embed2.php"></iframe>`,
			model.BackendBambooHR, "acme",
		},
		{
			"smartrecruiters",
			`<a href="https://careers.smartrecruiters.com/AcmeCorp">jobs</a>`,
			model.BackendSmartRecruiters, "AcmeCorp",
		},
		{
			"no match",
			`<html><body>We are not hiring.</body></html>`,
			model.BackendNone, "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, id, ok := Fingerprint([]byte(tc.markup))
			if tc.wantBackend == model.BackendNone {
				if ok {
					t.Fatalf("unexpected match: %v/%v", b, id)
				}
				return
			}
			if !ok {
				t.Fatal("expected a match")
			}
			if b != tc.wantBackend || id.Slug != tc.wantSlug {
				t.Errorf("got %v/%q, want %v/%q", b, id.Slug, tc.wantBackend, tc.wantSlug)
			}
		})
	}
}

func TestFingerprintPriority(t *testing.T) {
	// A page carrying both a Lever and a Workable embed resolves to Lever:
	// rule order is the backend priority, not document order.
	markup := `<html><body>
		<a href="https://apply.workable.com/acme/">old board</a>
		<a href="https://jobs.lever.co/acme">new board</a>
	</body></html>`
	b, id, ok := Fingerprint([]byte(markup))
	if !ok || b != model.BackendLever || id.Slug != "acme" {
		t.Fatalf("got %v/%q ok=%v, want lever/acme", b, id.Slug, ok)
	}
}

func TestFingerprintWorkday(t *testing.T) {
	markup := `<a href="https://acme.wd1.myworkdayjobs.com/en-US/External">open roles</a>`
	b, id, ok := Fingerprint([]byte(markup))
	if !ok || b != model.BackendWorkday {
		t.Fatalf("got %v ok=%v, want workday", b, ok)
	}
	if id.Host != "acme.wd1.myworkdayjobs.com" {
		t.Errorf("host = %q", id.Host)
	}
	if id.Tenant != "acme" {
		t.Errorf("tenant = %q", id.Tenant)
	}
	if id.Site != "External" {
		t.Errorf("site = %q", id.Site)
	}
}

func TestFingerprintAttributePass(t *testing.T) {
	// The fingerprint also has to fire on attribute values that never appear
	// as raw text, e.g. lazily loaded iframes.
	markup := `<html><body><iframe data-src="https://jobs.lever.co/acme"></iframe></body></html>`
	b, id, ok := Fingerprint([]byte(markup))
	if !ok || b != model.BackendLever || id.Slug != "acme" {
		t.Fatalf("got %v/%q ok=%v, want lever/acme", b, id.Slug, ok)
	}
}

func testSniffer(srv *httptest.Server) *Sniffer {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.Header.Set("X-Original-Host", req.URL.Host)
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
	c := adapter.NewClient(httpClient, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewSniffer(c)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestDiscoverProbesPathsInOrder(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path != "/join-us" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<a href="https://jobs.lever.co/acme">roles</a>`))
	}))
	defer srv.Close()

	s := testSniffer(srv)
	b, id, ok := s.Discover(context.Background(), "acme.io")
	if !ok || b != model.BackendLever || id.Slug != "acme" {
		t.Fatalf("got %v/%q ok=%v, want lever/acme", b, id.Slug, ok)
	}
	want := []string{"/careers", "/jobs", "/join-us"}
	if len(paths) != len(want) {
		t.Fatalf("probed %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("probed %v, want %v", paths, want)
		}
	}
}

func TestDiscoverStopsAtFirstSuccess(t *testing.T) {
	// The first 2xx page is the only one inspected, even when it carries no
	// fingerprint and a later path would have.
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/careers":
			w.Write([]byte(`<html><body>nothing embedded</body></html>`))
		case "/jobs":
			w.Write([]byte(`<a href="https://jobs.lever.co/acme">roles</a>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := testSniffer(srv)
	_, _, ok := s.Discover(context.Background(), "acme.io")
	if ok {
		t.Fatal("expected no discovery from the first responsive page")
	}
	if len(paths) != 1 || paths[0] != "/careers" {
		t.Fatalf("probed %v, want only /careers", paths)
	}
}

func TestDiscoverEmptyDomain(t *testing.T) {
	s := NewSniffer(adapter.NewClient(nil, nil, nil))
	if _, _, ok := s.Discover(context.Background(), ""); ok {
		t.Fatal("expected no discovery for empty domain")
	}
}

func TestFindCareersPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/work-with-us" {
			w.Write([]byte("<html>ok</html>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := testSniffer(srv)
	page, ok := s.FindCareersPage(context.Background(), "acme.io")
	if !ok || page != "https://acme.io/work-with-us" {
		t.Fatalf("got %q ok=%v", page, ok)
	}
}
