// Package extract holds the signal extractors of the supplier discovery
// pipeline. Every extractor is a pure function of an HTML document and the
// URL it came from; nothing here touches the network or the database.
package extract

import (
	"regexp"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// collapseSpace trims the text and folds runs of whitespace into single
// spaces, matching how rendered text reads.
func collapseSpace(text string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
}

// truncate caps a string at max runes.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
