package extract

import (
	"regexp"
	"strings"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

var emailPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.-]+\.[a-z]{2,}`)

// emailCategories maps local-part keywords to a department label. Checked
// in order; the first category with a matching keyword wins.
var emailCategories = []struct {
	keywords    []string
	description string
}{
	{[]string{"sales", "sell", "order"}, "Sales Department"},
	{[]string{"info", "contact", "enquiry"}, "Information Desk"},
	{[]string{"support", "help", "service"}, "Customer Support"},
	{[]string{"admin", "office"}, "Administration"},
	{[]string{"career", "hr", "jobs"}, "HR Department"},
}

// Emails returns every distinct email found in the document, lowercased
// and labelled by the apparent department of its local part.
func Emails(html, sourceURL string) []entity.ContactSignal {
	if html == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var signals []entity.ContactSignal
	for _, match := range emailPattern.FindAllString(html, -1) {
		email := strings.ToLower(match)
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}

		signals = append(signals, entity.ContactSignal{
			Value:       email,
			Source:      sourceURL,
			Kind:        entity.SignalEmail,
			Description: classifyEmail(email),
		})
	}
	return signals
}

func classifyEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	for _, category := range emailCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(local, keyword) {
				return category.description
			}
		}
	}
	return "General Contact"
}
