// Package pipeline wires one end-to-end run: roster in, resolution, diff
// against the persisted job set, outputs and notification out.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobsift/jobsift/internal/adapter"
	"github.com/jobsift/jobsift/internal/config"
	"github.com/jobsift/jobsift/internal/discover"
	"github.com/jobsift/jobsift/internal/fallback"
	"github.com/jobsift/jobsift/internal/hostlimit"
	"github.com/jobsift/jobsift/internal/model"
	"github.com/jobsift/jobsift/internal/notifier"
	"github.com/jobsift/jobsift/internal/report"
	"github.com/jobsift/jobsift/internal/resolve"
	"github.com/jobsift/jobsift/internal/roster"
	"github.com/jobsift/jobsift/internal/store"
)

// Pipeline owns the long-lived pieces shared across runs in watch mode.
type Pipeline struct {
	cfg      *config.Config
	resolver *resolve.Resolver
	notify   model.Notifier
	logger   *slog.Logger
}

// New assembles a pipeline from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout + 5*time.Second}
	limiter := hostlimit.New(cfg.Rate.PerHostRPS, cfg.Rate.Burst)

	client := adapter.NewClient(httpClient, limiter, logger)
	client.UserAgent = cfg.HTTP.UserAgent
	client.Timeout = cfg.HTTP.Timeout

	registry := adapter.NewRegistry(client)
	sniffer := discover.NewSniffer(client)
	extract := fallback.NewExtractor(client)

	resolver := resolve.New(registry, sniffer, extract, resolve.Limits{
		PerCompany: cfg.Limits.PerCompany,
		Total:      cfg.Limits.Total,
	}, cfg.Workers, logger)

	var n model.Notifier
	if cfg.Webhook.URL != "" && cfg.Webhook.Token != "" {
		n = notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Token, httpClient, logger)
	} else {
		n = notifier.NewLogNotifier(logger)
	}

	return &Pipeline{cfg: cfg, resolver: resolver, notify: n, logger: logger}
}

// Run executes one full pipeline pass. It only fails on setup errors (roster
// unreadable, outputs unwritable); resolution failures surface as zero-result
// diagnostics, never as errors.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	runDate := start.Format("2006-01-02")

	companies, err := roster.Load(p.cfg.RosterPath, roster.Filter{
		Companies: p.cfg.Filters.Companies,
		ATS:       p.cfg.Filters.ATS,
	})
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	p.logger.Info("roster loaded", "companies", len(companies))

	// A persisted set that cannot be opened degrades to an in-memory one:
	// the run still produces outputs, it just cannot diff against history.
	var jobSet model.JobSet
	if s, err := store.OpenSQLite(p.cfg.StorePath); err != nil {
		p.logger.Warn("job store unavailable, treating as empty", "path", p.cfg.StorePath, "error", err)
		jobSet = store.NewMemorySet()
	} else {
		jobSet = s
	}
	defer jobSet.Close()

	seen, err := jobSet.SeenKeys()
	if err != nil {
		return fmt.Errorf("snapshot job set: %w", err)
	}

	result := p.resolver.Run(ctx, companies, runDate)

	// New rows: absent from the set at run start, first occurrence wins
	// within the run.
	var newRows []model.NormalizedRow
	runKeys := make(map[string]struct{}, len(result.Rows))
	for _, row := range result.Rows {
		k := row.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		if _, ok := runKeys[k]; ok {
			continue
		}
		runKeys[k] = struct{}{}
		newRows = append(newRows, row)
	}

	if err := jobSet.Add(result.Rows); err != nil {
		return fmt.Errorf("update job set: %w", err)
	}
	if err := report.WriteRows(p.cfg.Outputs.Diff, newRows); err != nil {
		return fmt.Errorf("write diff output: %w", err)
	}

	websiteFor := make(map[string]string, len(companies))
	for _, c := range companies {
		websiteFor[c.Name] = c.Website
	}
	if err := report.WriteZeroResults(p.cfg.Outputs.Zero, result.Zeros, func(company string) string {
		return websiteFor[company]
	}); err != nil {
		return fmt.Errorf("write zero output: %w", err)
	}

	// Delivery failure must not fail the run; the datasets are already out.
	if err := p.notify.Notify(ctx, newRows); err != nil {
		p.logger.Error("notification failed", "error", err)
	}

	p.logger.Info("run complete",
		"scraped", len(result.Rows),
		"new", len(newRows),
		"zero_companies", len(result.Zeros),
		"elapsed", time.Since(start).String(),
	)
	return nil
}
