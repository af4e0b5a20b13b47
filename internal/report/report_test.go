package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/jobsift/jobsift/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestWriteRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_diff.csv")
	rows := []model.NormalizedRow{
		{
			CompanyName:    "Acme",
			CompanyWebsite: "https://acme.io",
			ATS:            "greenhouse",
			JobTitle:       "Engineer",
			JobLocation:    "Remote",
			JobDescription: "Build, things",
			ContactPerson:  "Jo Doe",
			JobURL:         "https://boards.greenhouse.io/acme/jobs/1",
			SourceRaw:      "https://boards-api.greenhouse.io/v1/boards/acme/jobs",
			Date:           "2026-08-28",
		},
	}
	if err := WriteRows(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "company_name" || records[0][12] != "date" {
		t.Errorf("header = %v", records[0])
	}
	if len(records[1]) != 13 {
		t.Fatalf("row has %d columns, want 13", len(records[1]))
	}
	if records[1][0] != "Acme" || records[1][4] != "Remote" || records[1][12] != "2026-08-28" {
		t.Errorf("row = %v", records[1])
	}
	// Commas inside field values must survive the round trip.
	if records[1][7] != "Build, things" {
		t.Errorf("description = %q", records[1][7])
	}
}

func TestWriteRowsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_diff.csv")
	if err := WriteRows(path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	records := readCSV(t, path)
	if len(records) != 1 {
		t.Fatalf("empty run must still write the header, got %d records", len(records))
	}
}

func TestWriteZeroResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_zero.csv")
	zeros := []model.ZeroResult{
		{
			Company:   "Acme",
			ATS:       "lever",
			Attempted: []string{"https://api.lever.co/v0/postings/acme", "https://jobs.lever.co/acme"},
		},
		{Company: "Beta", ATS: "unknown"},
	}
	websiteFor := func(company string) string {
		if company == "Beta" {
			return "https://beta.xyz"
		}
		return ""
	}
	if err := WriteZeroResults(path, zeros, websiteFor); err != nil {
		t.Fatalf("write: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	wantHeader := []string{"company", "ats", "scrapped_link"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Fatalf("header = %v, want %v", records[0], wantHeader)
		}
	}
	if records[1][2] != "https://api.lever.co/v0/postings/acme; https://jobs.lever.co/acme" {
		t.Errorf("attempted join = %q", records[1][2])
	}
	// No attempts at all: the raw website keeps the row actionable.
	if records[2][2] != "https://beta.xyz" {
		t.Errorf("website fallback = %q", records[2][2])
	}
}
