package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift/internal/model"
	"github.com/jobsift/jobsift/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Verify webhook delivery with a dummy row",
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Webhook.URL == "" || cfg.Webhook.Token == "" {
		return fmt.Errorf("webhook.url and webhook.token must be configured")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	n := notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Token, httpClient, logger)

	row := model.NormalizedRow{
		CompanyName:    "Jobsift Test",
		CompanyWebsite: "example.com",
		ATS:            "greenhouse",
		JobTitle:       "Test Posting (delivery check)",
		JobLocation:    "Remote",
		JobURL:         "https://example.com/careers/test",
		SourceRaw:      "https://example.com/careers",
		Date:           time.Now().Format("2006-01-02"),
	}
	if err := n.Notify(context.Background(), []model.NormalizedRow{row}); err != nil {
		return fmt.Errorf("test delivery failed: %w", err)
	}
	logger.Info("test delivery sent")
	return nil
}
