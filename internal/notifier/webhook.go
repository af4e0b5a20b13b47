package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobsift/jobsift/internal/model"
)

// Ensure WebhookNotifier implements model.Notifier.
var _ model.Notifier = (*WebhookNotifier)(nil)

const webhookTimeout = 20 * time.Second

// webhookRow is the JSON shape delivered downstream, matching the new-rows
// table column for column.
type webhookRow struct {
	CompanyName    string `json:"company_name"`
	CompanyWebsite string `json:"company_website"`
	ATS            string `json:"ats"`
	JobTitle       string `json:"job_title"`
	JobLocation    string `json:"job_location"`
	JobType        string `json:"job_type"`
	JobSalary      string `json:"job_salary"`
	JobDescription string `json:"job_description_short"`
	ContactPerson  string `json:"job_contact_person"`
	ContactEmail   string `json:"job_contact_email"`
	JobURL         string `json:"job_url"`
	SourceRaw      string `json:"source_raw"`
	Date           string `json:"date"`
}

// WebhookNotifier POSTs the new-rows set as a JSON array with bearer-token
// authentication. Delivery is best-effort; the caller logs and moves on.
type WebhookNotifier struct {
	url        string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWebhookNotifier(url, token string, httpClient *http.Client, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify delivers the rows in a single request.
func (n *WebhookNotifier) Notify(ctx context.Context, rows []model.NormalizedRow) error {
	payload := make([]webhookRow, 0, len(rows))
	for _, r := range rows {
		payload = append(payload, webhookRow{
			CompanyName:    r.CompanyName,
			CompanyWebsite: r.CompanyWebsite,
			ATS:            r.ATS,
			JobTitle:       r.JobTitle,
			JobLocation:    r.JobLocation,
			JobType:        r.JobType,
			JobSalary:      r.JobSalary,
			JobDescription: r.JobDescription,
			ContactPerson:  r.ContactPerson,
			ContactEmail:   r.ContactEmail,
			JobURL:         r.JobURL,
			SourceRaw:      r.SourceRaw,
			Date:           r.Date,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	n.logger.Info("webhook posting", "records", len(payload))
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	n.logger.Info("webhook response", "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
