package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const staticFetchTimeout = 30 * time.Second

// StaticStrategy is the plain HTTP GET tier used when headless rendering
// fails or times out.
type StaticStrategy struct {
	client *http.Client
}

// NewStaticStrategy builds the static tier; a nil client gets the default
// timeout.
func NewStaticStrategy(client *http.Client) *StaticStrategy {
	if client == nil {
		client = &http.Client{Timeout: staticFetchTimeout}
	}
	return &StaticStrategy{client: client}
}

// Name implements Strategy.
func (s *StaticStrategy) Name() string { return "static" }

// Fetch implements Strategy.
func (s *StaticStrategy) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request for %s: %w", targetURL, err)
	}
	req.Header.Set("User-Agent", desktopUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("get %s: status %d", targetURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", targetURL, err)
	}
	return string(body), nil
}
