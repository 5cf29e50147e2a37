// Package scrape retrieves rendered HTML for candidate supplier sites.
// Fetch strategies form an ordered chain; the first one to produce a
// document wins and later tiers never run.
package scrape

import (
	"context"
	"log"
)

// desktopUserAgent is presented by every tier so sites serve the same
// markup to both.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Strategy is a single way of turning a URL into an HTML document.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// Fetcher tries its strategies in order and returns the first non-empty
// document. A site where every tier fails yields ok=false, which the
// pipeline treats as a skip, never as a fatal error.
type Fetcher struct {
	strategies []Strategy
}

// NewFetcher builds a fetcher over the given ordered strategies.
func NewFetcher(strategies ...Strategy) *Fetcher {
	return &Fetcher{strategies: strategies}
}

// Fetch walks the strategy chain for one site.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, bool) {
	for _, strategy := range f.strategies {
		html, err := strategy.Fetch(ctx, targetURL)
		if err != nil {
			log.Printf("fetch strategy=%s url=%s error=%v", strategy.Name(), targetURL, err)
			continue
		}
		if html != "" {
			return html, true
		}
	}
	return "", false
}
