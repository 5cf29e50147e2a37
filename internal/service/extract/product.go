package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	minSnippetLen         = 20
	minDescriptionLen     = 30
	productDescriptionCap = 250
	genericProductSummary = "Laboratory equipment supplier with various scientific instruments and apparatus"
)

// ProductAvailability builds a short summary of what the site sells. The
// caller-supplied search snippet takes priority, then page metadata, then
// headings; weak results fall back to meta keywords or a generic line.
func ProductAvailability(html, snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return genericProductSummary
	}

	var description string
	switch {
	case len([]rune(snippet)) >= minSnippetLen:
		description = snippet
	case metaContent(doc, "meta[name='description']") != "":
		description = metaContent(doc, "meta[name='description']")
	case metaContent(doc, "meta[property='og:description']") != "":
		description = metaContent(doc, "meta[property='og:description']")
	default:
		h1 := strings.TrimSpace(doc.Find("h1").First().Text())
		h2 := strings.TrimSpace(doc.Find("h2").First().Text())
		description = h1
		if h2 != "" {
			description += " - " + h2
		}
	}

	if len([]rune(description)) < minDescriptionLen {
		if keywords := metaContent(doc, "meta[name='keywords']"); keywords != "" {
			description = "Products: " + keywords
		} else {
			description = genericProductSummary
		}
	}

	return truncate(description, productDescriptionCap)
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).Attr("content")
	return content
}
