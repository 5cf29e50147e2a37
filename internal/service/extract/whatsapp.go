package extract

import (
	"regexp"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

var whatsappPattern = regexp.MustCompile(`(?i)https?://(?:wa\.me|api\.whatsapp\.com/send)[^"'<\s]+`)

// maxWhatsappLinks bounds the messaging links kept per site.
const maxWhatsappLinks = 3

// WhatsappLinks returns up to three distinct WhatsApp share links found in
// the document. Deduplication is by the exact link string.
func WhatsappLinks(html, sourceURL string) []entity.ContactSignal {
	if html == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var signals []entity.ContactSignal
	for _, link := range whatsappPattern.FindAllString(html, -1) {
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		signals = append(signals, entity.ContactSignal{
			Value:       link,
			Source:      sourceURL,
			Kind:        entity.SignalWhatsapp,
			Description: "WhatsApp Business Chat",
		})
		if len(signals) == maxWhatsappLinks {
			break
		}
	}
	return signals
}
