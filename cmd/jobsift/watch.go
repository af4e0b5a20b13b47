package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift/internal/pipeline"
)

var watchSchedule string

// cronLogger adapts slog for the cron package so skipped triggers surface
// in the normal log stream.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, kv ...any) { c.l.Info(msg, kv...) }

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error(msg, append(kv, "error", err)...)
}

// newWatchCron builds a scheduler that skips a trigger while the previous
// run is still going. Two concurrent runs would race on the persisted job
// set: both snapshot the seen keys before either writes, so the same
// postings would be reported as new twice.
func newWatchCron(logger *slog.Logger) *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})))
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the pipeline on a cron schedule",
	Long:  "Run the pipeline repeatedly on a cron schedule; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule (overrides watch.schedule from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	schedule := cfg.Watch.Schedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}
	if schedule == "" {
		return fmt.Errorf("no schedule: set watch.schedule in config or pass --schedule")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, logger)

	c := newWatchCron(logger)
	if _, err := c.AddFunc(schedule, func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("parse schedule %q: %w", schedule, err)
	}

	logger.Info("watch started", "schedule", schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("goodbye")
	return nil
}
