package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	navigateTimeout = 60 * time.Second
	readyTimeout    = 30 * time.Second
)

// ChromeStrategy renders a page in a throwaway headless browser context.
// Image, stylesheet, font and media requests are failed at the
// interception layer to keep navigation fast. The browser context is
// cancelled before Fetch returns on every path.
type ChromeStrategy struct{}

// NewChromeStrategy returns the headless-render tier.
func NewChromeStrategy() *ChromeStrategy {
	return &ChromeStrategy{}
}

// Name implements Strategy.
func (s *ChromeStrategy) Name() string { return "chrome" }

// Fetch implements Strategy.
func (s *ChromeStrategy) Fetch(ctx context.Context, targetURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(desktopUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	blockHeavyResources(browserCtx)

	navCtx, cancelNav := context.WithTimeout(browserCtx, navigateTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, fetch.Enable(), chromedp.Navigate(targetURL)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", targetURL, err)
	}

	readyCtx, cancelReady := context.WithTimeout(browserCtx, readyTimeout)
	defer cancelReady()
	var html string
	err := chromedp.Run(readyCtx,
		chromedp.Poll(`document.readyState === "complete"`, nil),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("await document ready %s: %w", targetURL, err)
	}
	return html, nil
}

// blockHeavyResources fails paused requests for resource types the
// extractors never read.
func blockHeavyResources(browserCtx context.Context) {
	chromedp.ListenTarget(browserCtx, func(ev any) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(browserCtx)
			execCtx := cdp.WithExecutor(browserCtx, c.Target)
			switch paused.ResourceType {
			case network.ResourceTypeImage,
				network.ResourceTypeStylesheet,
				network.ResourceTypeFont,
				network.ResourceTypeMedia:
				_ = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
			default:
				_ = fetch.ContinueRequest(paused.RequestID).Do(execCtx)
			}
		}()
	})
}
