package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client fetches the upstream ICS calendar feed.
type Client struct {
	httpClient *retryablehttp.Client
	url        string
	userAgent  string
	timeout    time.Duration
}

func NewClient(url, userAgent string, timeout time.Duration) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 1 * time.Second
	httpClient.RetryWaitMax = 10 * time.Second
	httpClient.Logger = nil

	return &Client{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch retrieves and parses the calendar feed. A fetch failure is
// fatal for the whole cycle; no partial result is returned.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	data, err := c.fetchRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}

	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	return items, nil
}

func (c *Client) fetchRaw(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(timeoutCtx, "GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
