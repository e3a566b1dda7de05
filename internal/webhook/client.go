// Package webhook posts JSON payloads to the external workflow
// engine. Deliveries are single-shot: a failed POST is reported to
// the caller and audit-logged, never retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single webhook delivery.
const DefaultTimeout = 15 * time.Second

// Client delivers JSON payloads to webhook URLs.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a webhook client with the default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithTimeout creates a webhook client with a custom timeout.
// A zero or negative timeout falls back to DefaultTimeout so a missing
// config value never yields an unbounded http.Client.
func NewClientWithTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Post marshals payload and POSTs it to url. It returns the response
// body on a 2xx status and an error otherwise.
func (c *Client) Post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return respBody, nil
}
