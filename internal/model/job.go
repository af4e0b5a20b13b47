package model

import (
	"context"
	"strings"
)

// Backend identifies a supported ATS / job-board flavor.
type Backend string

const (
	BackendLever           Backend = "lever"
	BackendGreenhouse      Backend = "greenhouse"
	BackendWorkable        Backend = "workable"
	BackendAshby           Backend = "ashby"
	BackendRecruitee       Backend = "recruitee"
	BackendPersonio        Backend = "personio"
	BackendWorkday         Backend = "workday"
	BackendBambooHR        Backend = "bamboohr"
	BackendBreezy          Backend = "breezy"
	BackendWellfound       Backend = "wellfound"
	BackendKeka            Backend = "keka"
	BackendDeel            Backend = "deel"
	BackendPolymer         Backend = "polymer"
	BackendSmartRecruiters Backend = "smartrecruiters"
	BackendHTML            Backend = "html"
	BackendNone            Backend = ""
)

// ParseBackend maps a free-form ATS column value to a Backend.
// Unknown or blank values map to BackendNone.
func ParseBackend(s string) Backend {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BackendLever, BackendGreenhouse, BackendWorkable, BackendAshby,
		BackendRecruitee, BackendPersonio, BackendWorkday, BackendBambooHR,
		BackendBreezy, BackendWellfound, BackendKeka, BackendDeel,
		BackendPolymer, BackendSmartRecruiters:
		return b
	}
	return BackendNone
}

// Provenance records how a ResolvedIdentity was obtained.
type Provenance string

const (
	ProvenanceDeclared   Provenance = "declared"
	ProvenanceOverride   Provenance = "override"
	ProvenanceCandidate  Provenance = "inferred-candidate"
	ProvenanceDiscovered Provenance = "discovered"
)

// Identifier is a backend-specific board identifier. Most backends use a
// single slug/token; Workday requires a host/tenant/site triple.
type Identifier struct {
	Slug   string
	Host   string
	Tenant string
	Site   string
}

// SlugID wraps a bare slug into an Identifier.
func SlugID(slug string) Identifier { return Identifier{Slug: slug} }

// IsZero reports whether the identifier carries no usable value.
func (id Identifier) IsZero() bool {
	return id.Slug == "" && (id.Host == "" || id.Tenant == "" || id.Site == "")
}

// PackWorkday packs a Workday triple into the single "host|tenant|site"
// token used by discovery.
func (id Identifier) PackWorkday() string {
	return id.Host + "|" + id.Tenant + "|" + id.Site
}

// UnpackWorkday splits a packed "host|tenant|site" token.
func UnpackWorkday(token string) Identifier {
	parts := strings.SplitN(token, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return Identifier{Host: parts[0], Tenant: parts[1], Site: parts[2]}
}

// ResolvedIdentity is the outcome of identity resolution for one company in
// one run. It is never persisted.
type ResolvedIdentity struct {
	Backend    Backend
	ID         Identifier
	Provenance Provenance
}

// CompanyRecord is one immutable roster row.
type CompanyRecord struct {
	Name        string
	Website     string // raw, possibly blank or malformed
	Contact     string
	DeclaredATS string // advisory; overrides win
}

// JobPosting is a single posting as produced by an adapter.
// Salary is never populated: no supported backend supplies it reliably.
type JobPosting struct {
	Title       string
	Location    string
	Type        string
	Salary      string
	Description string // plain text, truncated by the adapter
	URL         string
	SourceURL   string // the endpoint or page that produced this posting
}

// NormalizedRow is one output row: a JobPosting joined with its company
// context and the run date. Rows without a location are never materialized.
type NormalizedRow struct {
	CompanyName    string
	CompanyWebsite string
	ATS            string
	JobTitle       string
	JobLocation    string
	JobType        string
	JobSalary      string
	JobDescription string
	ContactPerson  string
	ContactEmail   string
	JobURL         string
	SourceRaw      string
	Date           string
}

// Key returns the composite deduplication key: the lowercased
// company|url|title|location concatenation.
func (r NormalizedRow) Key() string {
	return strings.ToLower(r.CompanyName) + "|" +
		strings.ToLower(r.JobURL) + "|" +
		strings.ToLower(r.JobTitle) + "|" +
		strings.ToLower(r.JobLocation)
}

// ZeroResult is the diagnostic emitted for a company that yielded no rows.
type ZeroResult struct {
	Company   string
	ATS       string   // backend label attempted, or "unknown"
	Attempted []string // every endpoint/URL tried, in order, deduplicated
}

// JobSet is the persisted, cross-run store of normalized rows keyed by their
// composite key. Earliest-seen row wins on key conflict.
type JobSet interface {
	// SeenKeys returns a snapshot of every key currently in the set.
	SeenKeys() (map[string]struct{}, error)
	// Add inserts rows, ignoring any whose key is already present.
	Add(rows []NormalizedRow) error
	Close() error
}

// Notifier delivers the new-rows set downstream. Delivery failure must be
// non-fatal to the run.
type Notifier interface {
	Notify(ctx context.Context, rows []NormalizedRow) error
}
