// Package report writes the run outputs: the new-rows table and the
// zero-result diagnostics table. Both files are rewritten every run, empty or
// not, so downstream consumers always see a fresh artifact.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/jobsift/jobsift/internal/model"
)

// rowHeader is the fixed column order of the new-rows output.
var rowHeader = []string{
	"company_name",
	"company_website",
	"ats",
	"job_title",
	"job_location",
	"job_type",
	"job_salary",
	"job_description_short",
	"job_contact_person",
	"job_contact_email",
	"job_url",
	"source_raw",
	"date",
}

// WriteRows writes the new-rows table to path.
func WriteRows(path string, rows []model.NormalizedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rowHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.CompanyName,
			r.CompanyWebsite,
			r.ATS,
			r.JobTitle,
			r.JobLocation,
			r.JobType,
			r.JobSalary,
			r.JobDescription,
			r.ContactPerson,
			r.ContactEmail,
			r.JobURL,
			r.SourceRaw,
			r.Date,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteZeroResults writes the zero-result diagnostics table to path. The
// attempted URLs are semicolon-joined; a company with no attempts at all
// falls back to its raw website so the row is still actionable.
func WriteZeroResults(path string, zeros []model.ZeroResult, websiteFor func(company string) string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"company", "ats", "scrapped_link"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, z := range zeros {
		link := strings.Join(z.Attempted, "; ")
		if link == "" && websiteFor != nil {
			link = websiteFor(z.Company)
		}
		if err := w.Write([]string{z.Company, z.ATS, link}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
