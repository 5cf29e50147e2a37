package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const sellerNameNotFound = "Company Name Not Found"

// SellerName resolves the organization name behind a page, trying the
// usual suspects in decreasing order of reliability: site-name metadata,
// the page title, the first heading, the logo alt text, and finally any
// element branded by its class name.
func SellerName(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sellerNameNotFound
	}

	candidates := []func() string{
		func() string {
			content, _ := doc.Find("meta[property='og:site_name']").Attr("content")
			return content
		},
		func() string {
			content, _ := doc.Find("meta[name='og:site_name']").Attr("content")
			return content
		},
		func() string {
			title := strings.TrimSpace(doc.Find("title").First().Text())
			title = strings.SplitN(title, "|", 2)[0]
			title = strings.SplitN(title, "-", 2)[0]
			return title
		},
		func() string { return doc.Find("h1").First().Text() },
		func() string {
			alt, _ := doc.Find(".logo").First().Attr("alt")
			return alt
		},
		func() string { return doc.Find("[class*='brand']").First().Text() },
	}

	for _, candidate := range candidates {
		if name := strings.TrimSpace(candidate()); name != "" {
			return truncate(name, 100)
		}
	}
	return sellerNameNotFound
}
