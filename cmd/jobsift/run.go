package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift/internal/pipeline"
)

var (
	onlyCompanies []string
	onlyATS       []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline pass",
	Long:  "Resolve every roster company, extract postings, diff against the persisted set, and write the output tables.",
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().StringSliceVar(&onlyCompanies, "only-companies", nil, "restrict the run to these company names")
	runCmd.Flags().StringSliceVar(&onlyATS, "only-ats", nil, "restrict the run to these declared ATS values")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if len(onlyCompanies) > 0 {
		cfg.Filters.Companies = onlyCompanies
	}
	if len(onlyATS) > 0 {
		cfg.Filters.ATS = onlyATS
	}

	logger.Info("config loaded",
		"roster", cfg.RosterPath,
		"store", cfg.StorePath,
		"per_company", cfg.Limits.PerCompany,
		"total", cfg.Limits.Total,
		"workers", cfg.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return pipeline.New(cfg, logger).Run(ctx)
}
