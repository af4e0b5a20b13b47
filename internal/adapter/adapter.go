// Package adapter implements one fetcher per supported ATS backend. Every
// adapter is total: any transport failure, non-2xx status, or unparseable
// payload yields an empty result, never an error. Faults are logged at debug
// level so an empty board and a broken fetch stay distinguishable.
package adapter

import (
	"context"

	"github.com/jobsift/jobsift/internal/model"
)

// Adapter fetches postings for one backend kind.
type Adapter interface {
	Kind() model.Backend
	// Endpoint returns the primary URL that Fetch would hit for this
	// identifier, for the attempt ledger. Empty when the identifier is unusable.
	Endpoint(id model.Identifier, limit int) string
	// Fetch returns at most limit postings. It never fails: missing
	// identifier, network error, bad status and bad payload all return nil.
	Fetch(ctx context.Context, id model.Identifier, limit int) []model.JobPosting
}

// HTMLFallback is implemented by adapters that can scrape their backend's
// hosted board page when the API yields nothing (Lever, Greenhouse).
type HTMLFallback interface {
	FallbackEndpoint(id model.Identifier) string
	FetchHTML(ctx context.Context, id model.Identifier, limit int) []model.JobPosting
}

// Registry holds one adapter per backend kind.
type Registry map[model.Backend]Adapter

// NewRegistry builds the full adapter set over a shared client.
func NewRegistry(c *Client) Registry {
	adapters := []Adapter{
		NewLever(c),
		NewGreenhouse(c),
		NewWorkable(c),
		NewAshby(c),
		NewRecruitee(c),
		NewPersonio(c),
		NewWorkday(c),
		NewBambooHR(c),
		NewBreezy(c),
		NewWellfound(c),
		NewKeka(c),
		NewDeel(c),
		NewPolymer(c),
		NewSmartRecruiters(c),
	}
	r := make(Registry, len(adapters))
	for _, a := range adapters {
		r[a.Kind()] = a
	}
	return r
}
