// Package store persists the cross-run job set. The composite key
// (company|url|title|location, lowercased) is the unit of identity; on a key
// conflict the earliest-seen row is kept.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jobsift/jobsift/internal/model"
)

var _ model.JobSet = (*SQLiteSet)(nil)

// SQLiteSet is the durable job set. A missing database file is simply an
// empty set; sqlite creates it on first open.
type SQLiteSet struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the job set database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteSet, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS jobs (
		key                   TEXT PRIMARY KEY,
		company_name          TEXT,
		company_website       TEXT,
		ats                   TEXT,
		job_title             TEXT,
		job_location          TEXT,
		job_type              TEXT,
		job_salary            TEXT,
		job_description_short TEXT,
		job_contact_person    TEXT,
		job_contact_email     TEXT,
		job_url               TEXT,
		source_raw            TEXT,
		date                  TEXT
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating jobs table: %w", err)
	}

	return &SQLiteSet{db: db}, nil
}

// SeenKeys returns every composite key currently in the set.
func (s *SQLiteSet) SeenKeys() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT key FROM jobs")
	if err != nil {
		return nil, fmt.Errorf("listing job keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning job key: %w", err)
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

// Add inserts rows, keeping the existing row on key conflict.
func (s *SQLiteSet) Add(newRows []model.NormalizedRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO jobs (
		key, company_name, company_website, ats, job_title, job_location,
		job_type, job_salary, job_description_short, job_contact_person,
		job_contact_email, job_url, source_raw, date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range newRows {
		if _, err := stmt.Exec(
			r.Key(), r.CompanyName, r.CompanyWebsite, r.ATS, r.JobTitle,
			r.JobLocation, r.JobType, r.JobSalary, r.JobDescription,
			r.ContactPerson, r.ContactEmail, r.JobURL, r.SourceRaw, r.Date,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting job %s: %w", r.Key(), err)
		}
	}
	return tx.Commit()
}

// Count returns the number of rows in the set.
func (s *SQLiteSet) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting jobs: %w", err)
	}
	return n, nil
}

func (s *SQLiteSet) Close() error {
	return s.db.Close()
}
