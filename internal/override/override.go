// Package override holds the hand-verified corrections consulted before any
// slug inference. An override fully determines backend and identifier for a
// company, even when it contradicts the roster's declared ATS column; the
// declared value is advisory only.
package override

import (
	"strings"

	"github.com/jobsift/jobsift/internal/model"
)

// Entry pins a company to a backend and board identifier.
type Entry struct {
	Backend model.Backend
	Token   string
}

// companies maps lowercase company name to a verified (backend, identifier)
// pair. Add entries here only once confirmed against the live board.
var companies = map[string]Entry{
	"chainlink":      {model.BackendAshby, "chainlink-labs"},
	"chainlink labs": {model.BackendAshby, "chainlink-labs"},
	"aave":           {model.BackendLever, "aavelabs"},
	"aave labs":      {model.BackendLever, "aavelabs"},
	"optimism":       {model.BackendAshby, "opfoundation"},
	"op labs":        {model.BackendAshby, "opfoundation"},
	"bebop":          {model.BackendLever, "wintermute-trading"},
	"bebob":          {model.BackendLever, "wintermute-trading"},
}

// leverSlugs corrects the Lever board slug for companies whose domain label
// does not match their board. Applies only when the resolved backend is Lever.
var leverSlugs = map[string]string{
	"aave":               "aavelabs",
	"aave labs":          "aavelabs",
	"aragon":             "aragon",
	"wintermute":         "wintermute-trading",
	"wintermute trading": "wintermute-trading",
	"seilabs":            "SeiLabs",
	"sei labs":           "SeiLabs",
	"zerion":             "zerion",
	"crypto.com":         "cryptocom",
	"bebop":              "wintermute-trading",
	"bebob":              "wintermute-trading",
}

// Company returns the full override for a company name, if one exists.
func Company(name string) (Entry, bool) {
	e, ok := companies[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// LeverSlug returns the corrected Lever slug for a company name, if one exists.
func LeverSlug(name string) (string, bool) {
	s, ok := leverSlugs[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}
