package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/hostlimit"
	"github.com/jobsift/jobsift/internal/model"
)

// DefaultUserAgent mimics a desktop browser; several boards refuse obvious
// bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client bundles everything the adapters share: the HTTP client, per-host
// pacing, the user agent and per-call timeouts.
type Client struct {
	HTTP      *http.Client
	Limiter   *hostlimit.Limiter
	Logger    *slog.Logger
	UserAgent string
	Timeout   time.Duration // per call; individual adapters may stretch it
}

// NewClient applies defaults for any zero field.
func NewClient(httpClient *http.Client, limiter *hostlimit.Limiter, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTP:      httpClient,
		Limiter:   limiter,
		Logger:    logger,
		UserAgent: DefaultUserAgent,
		Timeout:   10 * time.Second,
	}
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, accept string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = c.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.Limiter != nil {
		if err := c.Limiter.WaitURL(ctx, url); err != nil {
			return nil, fmt.Errorf("rate wait for %s: %w", url, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

// GetJSON fetches url and decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	data, err := c.do(ctx, http.MethodGet, url, nil, "application/json", 0)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// PostJSON POSTs body as JSON to url and decodes the response into v.
func (c *Client) PostJSON(ctx context.Context, url string, body, v any, timeout time.Duration) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body for %s: %w", url, err)
	}
	data, err := c.do(ctx, http.MethodPost, url, payload, "application/json", timeout)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetRaw fetches url and returns the raw body.
func (c *Client) GetRaw(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, "", 0)
}

// GetDoc fetches url and parses the body as an HTML document.
func (c *Client) GetDoc(ctx context.Context, url string) (*goquery.Document, error) {
	data, err := c.do(ctx, http.MethodGet, url, nil, "", 0)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// logFault records an internal adapter failure. The caller still returns an
// empty result; the log line is the only externally visible trace.
func (c *Client) logFault(backend model.Backend, url string, err error) {
	c.Logger.Debug("adapter fetch failed", "backend", string(backend), "url", url, "error", err)
}
