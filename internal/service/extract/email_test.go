package extract

import "testing"

func TestEmailsLowercasesAndDedupes(t *testing.T) {
	html := `<p>Write to Sales@Acme.in or sales@acme.in for quotes.</p>`

	signals := Emails(html, "https://acme.in")
	if len(signals) != 1 {
		t.Fatalf("expected 1 email, got %d", len(signals))
	}
	if signals[0].Value != "sales@acme.in" {
		t.Fatalf("expected lowercased email, got %q", signals[0].Value)
	}
	if signals[0].Source != "https://acme.in" {
		t.Fatalf("unexpected source: %q", signals[0].Source)
	}
}

func TestEmailsUppercaseTLD(t *testing.T) {
	// Sites that shout their contact details still count.
	html := `<p>Write to SALES@ACME.COM or Orders@Acme.Com for quotes.</p>`

	signals := Emails(html, "https://acme.com")
	if len(signals) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(signals))
	}
	if signals[0].Value != "sales@acme.com" {
		t.Fatalf("expected lowercased email, got %q", signals[0].Value)
	}
	if signals[1].Value != "orders@acme.com" {
		t.Fatalf("expected lowercased email, got %q", signals[1].Value)
	}
	if signals[0].Description != "Sales Department" {
		t.Fatalf("unexpected description: %q", signals[0].Description)
	}
}

func TestEmailsClassifiesByLocalPart(t *testing.T) {
	cases := []struct {
		email    string
		expected string
	}{
		{"sales@acme.in", "Sales Department"},
		{"orders@acme.in", "Sales Department"},
		{"info@acme.in", "Information Desk"},
		{"enquiry@acme.in", "Information Desk"},
		{"support@acme.in", "Customer Support"},
		{"helpdesk@acme.in", "Customer Support"},
		{"admin@acme.in", "Administration"},
		{"office@acme.in", "Administration"},
		{"hr@acme.in", "HR Department"},
		{"careers@acme.in", "HR Department"},
		{"bob@acme.in", "General Contact"},
	}

	for _, tc := range cases {
		signals := Emails("reach us at "+tc.email, "https://acme.in")
		if len(signals) != 1 {
			t.Fatalf("%s: expected 1 email, got %d", tc.email, len(signals))
		}
		if signals[0].Description != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.email, tc.expected, signals[0].Description)
		}
	}
}

func TestEmailsPrefersEarlierCategory(t *testing.T) {
	// "sales-support" matches both sales and support keywords.
	signals := Emails("sales-support@acme.in", "https://acme.in")
	if len(signals) != 1 {
		t.Fatalf("expected 1 email, got %d", len(signals))
	}
	if signals[0].Description != "Sales Department" {
		t.Fatalf("expected sales to win, got %q", signals[0].Description)
	}
}

func TestEmailsEmptyDocument(t *testing.T) {
	if signals := Emails("", "https://acme.in"); signals != nil {
		t.Fatalf("expected nil for empty document, got %v", signals)
	}
}
