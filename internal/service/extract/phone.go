package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

var (
	indianPhonePattern = regexp.MustCompile(`(?:\+91[\s-]?)?[6789]\d{9}|0[6789]\d{9}`)
	nonDigitPattern    = regexp.MustCompile(`\D`)
)

// NormalizeIndianPhone canonicalizes a raw phone candidate to
// +91XXXXXXXXXX. After stripping non-digits, the only accepted shapes are
// a bare 10-digit mobile, a 91-prefixed 12-digit string, and a
// trunk-0-prefixed 11-digit string, each with a leading mobile digit in
// 6-9. Anything else returns the empty string.
func NormalizeIndianPhone(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10 && isMobileLead(digits[0]):
		return "+91" + digits
	case len(digits) == 12 && strings.HasPrefix(digits, "91") && isMobileLead(digits[2]):
		return "+" + digits
	case len(digits) == 11 && digits[0] == '0' && isMobileLead(digits[1]):
		return "+91" + digits[1:]
	default:
		return ""
	}
}

func isMobileLead(b byte) bool {
	return b >= '6' && b <= '9'
}

// Phones collects phone numbers from raw text matches and tel: anchors.
// Duplicates collapse by normalized value; when the same number appears
// again the later record replaces the earlier one in place.
func Phones(html, sourceURL string) []entity.ContactSignal {
	if html == "" {
		return nil
	}

	var candidates []entity.ContactSignal
	for _, match := range indianPhonePattern.FindAllString(html, -1) {
		if formatted := NormalizeIndianPhone(match); formatted != "" {
			candidates = append(candidates, entity.ContactSignal{
				Value:       formatted,
				Source:      sourceURL,
				Kind:        entity.SignalPhone,
				Description: "Business Phone",
			})
		}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("a[href^='tel:']").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if formatted := NormalizeIndianPhone(strings.TrimPrefix(href, "tel:")); formatted != "" {
				candidates = append(candidates, entity.ContactSignal{
					Value:       formatted,
					Source:      sourceURL,
					Kind:        entity.SignalPhone,
					Description: "Direct Call",
				})
			}
		})
	}

	return dedupeByValue(candidates, 0)
}

// dedupeByValue collapses signals sharing a value. Order follows first
// appearance of each value while the stored record is the last one seen.
// A positive limit caps the output length.
func dedupeByValue(signals []entity.ContactSignal, limit int) []entity.ContactSignal {
	if len(signals) == 0 {
		return nil
	}
	index := make(map[string]int, len(signals))
	var out []entity.ContactSignal
	for _, sig := range signals {
		if at, dup := index[sig.Value]; dup {
			out[at] = sig
			continue
		}
		index[sig.Value] = len(out)
		out = append(out, sig)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
