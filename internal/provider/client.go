// Package provider fetches raw job-offer payloads from the configured
// external sources. Each source speaks its own JSON schema; decoding is the
// normalizer's job, so a fetch returns the body untouched.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBytes = 8 << 20

// Source identifies one external endpoint.
type Source struct {
	Name string
	URL  string
}

// Client performs independent GETs against provider endpoints. A failure is
// scoped to the source that produced it; callers decide how to continue.
type Client struct {
	client *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw payload for one source. Non-2xx responses and
// oversized bodies are errors; no retries happen at this layer.
func (c *Client) Fetch(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", src.Name, resp.StatusCode)
	}

	body, err := readAllLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	return body, nil
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
