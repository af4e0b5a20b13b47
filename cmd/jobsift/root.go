package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift/internal/config"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Resolve company rosters into job-board postings",
	Long:  "jobsift resolves each roster company to its real job board, extracts current postings, and emits only what is new since the last run.",
	// Default to `run` so invoking the binary directly performs one pass.
	RunE: runOnce,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > "./config.yaml".
// Only the implicit default path may be absent.
func loadConfig(path string) (*config.Config, error) {
	optional := false
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
			optional = true
		}
	}
	return config.Load(path, optional)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}
