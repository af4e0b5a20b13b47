// Package roster reads the company roster CSV. Column headers follow the
// account-export convention: "Company Name", "Company Website",
// "Lead Contact (LC)", "ATS used".
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jobsift/jobsift/internal/model"
)

const (
	colName    = "Company Name"
	colWebsite = "Company Website"
	colContact = "Lead Contact (LC)"
	colATS     = "ATS used"
)

// Filter restricts a run to a subset of the roster. Empty lists mean no
// restriction. ATS matching is case-insensitive; company matching is exact.
type Filter struct {
	Companies []string
	ATS       []string
}

func (f Filter) match(rec model.CompanyRecord) bool {
	if len(f.Companies) > 0 {
		ok := false
		for _, name := range f.Companies {
			if strings.TrimSpace(name) == rec.Name {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.ATS) > 0 {
		ok := false
		for _, ats := range f.ATS {
			if strings.EqualFold(strings.TrimSpace(ats), rec.DeclaredATS) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Load reads the roster file and applies the filter, preserving file order.
func Load(path string, filter Filter) ([]model.CompanyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return Parse(f, filter)
}

// Parse reads roster CSV content from r.
func Parse(r io.Reader, filter Filter) ([]model.CompanyRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exported sheets often carry ragged trailing columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, fmt.Errorf("roster missing %q column", colName)
	}

	field := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.CompanyRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		rec := model.CompanyRecord{
			Name:        field(row, colName),
			Website:     field(row, colWebsite),
			Contact:     field(row, colContact),
			DeclaredATS: field(row, colATS),
		}
		if rec.Name == "" {
			continue
		}
		if filter.match(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}
