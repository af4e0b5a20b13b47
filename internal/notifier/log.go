package notifier

import (
	"context"
	"log/slog"

	"github.com/jobsift/jobsift/internal/model"
)

var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier is the default sink when no webhook is configured: each new row
// becomes one structured log line.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, rows []model.NormalizedRow) error {
	for _, r := range rows {
		n.logger.Info("new job",
			"company", r.CompanyName,
			"ats", r.ATS,
			"title", r.JobTitle,
			"location", r.JobLocation,
			"url", r.JobURL,
		)
	}
	return nil
}
