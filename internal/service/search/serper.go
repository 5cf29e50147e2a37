// Package search wraps the Serper search API behind the Gateway interface
// consumed by the supplier pipeline.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://google.serper.dev/search"

	// querySuffix steers organic results towards supplier sites that
	// publish contact details.
	querySuffix = " supplier India contact website email phone"

	requestedResults = 15
	maxCandidates    = 12
)

// disallowedDomains are platforms that never host a supplier's own site.
var disallowedDomains = []string{
	"google.com",
	"youtube.com",
	"facebook.com",
	"twitter.com",
}

// Result is one organic search hit surfaced to the pipeline.
type Result struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Hostname string `json:"hostname"`
}

// Gateway issues one search per prompt and yields candidate sites.
type Gateway interface {
	Search(ctx context.Context, prompt string) ([]Result, error)
}

// SerperClient implements Gateway against the Serper HTTP API.
type SerperClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewSerperClient builds a client; a nil http.Client gets a 30s timeout.
func NewSerperClient(client *http.Client, apiKey, baseURL string) *SerperClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &SerperClient{client: client, apiKey: apiKey, baseURL: baseURL}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs one query and returns up to twelve candidates with
// disallowed platforms filtered out. Any transport or API error fails the
// whole lookup; there is no partial fallback.
func (c *SerperClient) Search(ctx context.Context, prompt string) ([]Result, error) {
	body, err := json.Marshal(serperRequest{Q: prompt + querySuffix, Num: requestedResults})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var payload serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	var results []Result
	for _, item := range payload.Organic {
		if item.Link == "" || isDisallowed(item.Link) {
			continue
		}
		parsed, err := url.Parse(item.Link)
		if err != nil || parsed.Hostname() == "" {
			continue
		}
		results = append(results, Result{
			Title:    item.Title,
			Link:     item.Link,
			Snippet:  item.Snippet,
			Hostname: parsed.Hostname(),
		})
		if len(results) == maxCandidates {
			break
		}
	}
	return results, nil
}

func isDisallowed(link string) bool {
	for _, domain := range disallowedDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}
