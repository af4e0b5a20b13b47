// Package resolve drives the per-company resolution state machine and the
// run-level aggregation: declared/override backend, inferred slug candidates,
// same-backend HTML fallback, live discovery, then the generic extractors.
// Resolution halts at the first stage that yields postings.
package resolve

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jobsift/jobsift/internal/adapter"
	"github.com/jobsift/jobsift/internal/identity"
	"github.com/jobsift/jobsift/internal/model"
	"github.com/jobsift/jobsift/internal/override"
)

// Discoverer fingerprints a company's own site for its real ATS.
type Discoverer interface {
	Discover(ctx context.Context, domain string) (model.Backend, model.Identifier, bool)
	FindCareersPage(ctx context.Context, domain string) (string, bool)
}

// PageExtractor runs the generic last-resort extractors against a page.
type PageExtractor interface {
	FetchStructured(ctx context.Context, pageURL string, limit int) []model.JobPosting
	FetchDOM(ctx context.Context, pageURL string, limit int) []model.JobPosting
}

// Limits bounds emitted rows per company and per run.
type Limits struct {
	PerCompany int
	Total      int
}

// Resolver resolves a roster into normalized rows.
type Resolver struct {
	registry adapter.Registry
	sniffer  Discoverer
	extract  PageExtractor
	limits   Limits
	workers  int
	logger   *slog.Logger
}

func New(registry adapter.Registry, sniffer Discoverer, extract PageExtractor, limits Limits, workers int, logger *slog.Logger) *Resolver {
	if workers < 1 {
		workers = 1
	}
	return &Resolver{
		registry: registry,
		sniffer:  sniffer,
		extract:  extract,
		limits:   limits,
		workers:  workers,
		logger:   logger,
	}
}

// Result is the aggregate outcome of one run, before diffing.
type Result struct {
	Rows  []model.NormalizedRow
	Zeros []model.ZeroResult
}

// outcome is one company's resolution, pre-global-cap.
type outcome struct {
	rec       model.CompanyRecord
	rows      []model.NormalizedRow
	attempted []string
	atsLabel  string
}

// Run resolves every company and aggregates rows under the global cap.
// Companies are resolved concurrently (each resolution is side-effect-free)
// but rows are applied strictly in roster order, so the cap cut-off is
// deterministic: once the global cap is reached, no later company contributes
// rows or diagnostics.
func (r *Resolver) Run(ctx context.Context, companies []model.CompanyRecord, runDate string) Result {
	outcomes := make([]outcome, len(companies))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, rec := range companies {
		i, rec := i, rec
		g.Go(func() error {
			outcomes[i] = r.resolveCompany(ctx, rec, runDate)
			return nil
		})
	}
	g.Wait()

	var res Result
	total := 0
	for _, o := range outcomes {
		if total >= r.limits.Total {
			break
		}
		kept := 0
		for _, row := range o.rows {
			if total >= r.limits.Total {
				break
			}
			res.Rows = append(res.Rows, row)
			total++
			kept++
		}
		r.logger.Info("company resolved",
			"company", o.rec.Name,
			"ats", zeroLabel(o),
			"jobs", kept,
		)
		if kept == 0 {
			res.Zeros = append(res.Zeros, model.ZeroResult{
				Company:   o.rec.Name,
				ATS:       zeroLabel(o),
				Attempted: dedupe(o.attempted),
			})
		}
	}
	return res
}

// zeroLabel names the backend for logs and diagnostics: the resolved label
// when one was reached, else the declared value, else "unknown".
func zeroLabel(o outcome) string {
	if o.atsLabel != "" {
		return o.atsLabel
	}
	if declared := strings.ToLower(strings.TrimSpace(o.rec.DeclaredATS)); declared != "" {
		return declared
	}
	return "unknown"
}

func (r *Resolver) resolveCompany(ctx context.Context, rec model.CompanyRecord, runDate string) outcome {
	o := outcome{rec: rec}
	limit := r.limits.PerCompany

	domain, _ := identity.NormalizeDomain(rec.Website)
	label := identity.FirstLabel(domain)

	backend := model.ParseBackend(rec.DeclaredATS)
	token := ""
	if ov, ok := override.Company(rec.Name); ok {
		backend, token = ov.Backend, ov.Token
	}

	var jobs []model.JobPosting

	if ad, ok := r.registry[backend]; ok {
		o.atsLabel = string(backend)
		id := initialIdentifier(backend, token, label, rec.Name)

		if !id.IsZero() {
			if ep := ad.Endpoint(id, limit); ep != "" {
				o.attempted = append(o.attempted, ep)
			}
			jobs = ad.Fetch(ctx, id, limit)
		}

		if len(jobs) == 0 {
			for _, cand := range identity.SlugVariants(rec.Name, label) {
				cid := model.SlugID(cand)
				if ep := ad.Endpoint(cid, limit); ep != "" {
					o.attempted = append(o.attempted, ep)
				}
				jobs = ad.Fetch(ctx, cid, limit)
				if len(jobs) > 0 {
					id = cid
					break
				}
			}
		}

		if len(jobs) == 0 {
			if hf, ok := ad.(adapter.HTMLFallback); ok {
				if ep := hf.FallbackEndpoint(id); ep != "" {
					o.attempted = append(o.attempted, ep)
				}
				jobs = hf.FetchHTML(ctx, id, limit)
			}
		}
	}

	if len(jobs) == 0 {
		jobs = r.discoverAndFetch(ctx, domain, limit, &o)
	}

	for _, j := range jobs {
		if strings.TrimSpace(j.Location) == "" {
			continue
		}
		o.rows = append(o.rows, model.NormalizedRow{
			CompanyName:    rec.Name,
			CompanyWebsite: strings.TrimSpace(rec.Website),
			ATS:            o.atsLabel,
			JobTitle:       j.Title,
			JobLocation:    j.Location,
			JobType:        j.Type,
			JobSalary:      j.Salary,
			JobDescription: j.Description,
			ContactPerson:  rec.Contact,
			ContactEmail:   "",
			JobURL:         j.URL,
			SourceRaw:      j.SourceURL,
			Date:           runDate,
		})
	}
	return o
}

// discoverAndFetch runs the discovery sniffer and, failing that, the generic
// extractors against the first responsive careers page.
func (r *Resolver) discoverAndFetch(ctx context.Context, domain string, limit int, o *outcome) []model.JobPosting {
	if b, id, ok := r.sniffer.Discover(ctx, domain); ok {
		if ad, reg := r.registry[b]; reg {
			// Discovery overwrites the displayed backend label.
			o.atsLabel = string(b)
			if ep := ad.Endpoint(id, limit); ep != "" {
				o.attempted = append(o.attempted, ep)
			}
			return ad.Fetch(ctx, id, limit)
		}
		return nil
	}

	page, ok := r.sniffer.FindCareersPage(ctx, domain)
	if !ok {
		return nil
	}
	jobs := r.extract.FetchStructured(ctx, page, limit)
	if len(jobs) == 0 {
		jobs = r.extract.FetchDOM(ctx, page, limit)
	}
	if len(jobs) == 0 {
		o.attempted = append(o.attempted, page)
		return nil
	}
	if o.atsLabel == "" {
		o.atsLabel = string(model.BackendHTML)
	}
	return jobs
}

// initialIdentifier builds the first identifier to try for a declared or
// overridden backend. The HTML-only boards fall back to the name-derived slug
// when the company has no usable domain.
func initialIdentifier(backend model.Backend, token, domainLabel, name string) model.Identifier {
	if backend == model.BackendLever {
		// Lever slug corrections outrank both the override token and the
		// domain inference.
		if slug, ok := override.LeverSlug(name); ok {
			return model.SlugID(slug)
		}
	}
	if token != "" {
		return model.SlugID(token)
	}
	if domainLabel != "" {
		return model.SlugID(domainLabel)
	}
	switch backend {
	case model.BackendWellfound, model.BackendDeel, model.BackendPolymer:
		return model.SlugID(identity.Slugify(name))
	}
	return model.Identifier{}
}

// dedupe removes duplicate attempt URLs, preserving first-seen order.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	var uniq []string
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		uniq = append(uniq, u)
	}
	return uniq
}
