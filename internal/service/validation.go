package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

var (
	savedEmailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile       = idna.Lookup
)

// defaultPhoneRegion interprets bare national numbers in curated
// payloads.
const defaultPhoneRegion = "IN"

// ErrNoSuppliers rejects curated payloads with nothing to store.
var ErrNoSuppliers = errors.New("at least one supplier is required")

// SupplierValidator cleans client-curated supplier payloads before they
// are persisted alongside pipeline output. Unlike the extractors, it
// works on already-structured records, so it leans on full E.164 parsing
// rather than the pipeline's fixed national shapes.
type SupplierValidator struct {
	Region string
}

// NewSupplierValidator builds a validator with the default region.
func NewSupplierValidator() *SupplierValidator {
	return &SupplierValidator{Region: defaultPhoneRegion}
}

// Clean validates and normalizes a curated supplier list. Suppliers left
// with no usable signals are dropped; an empty outcome is an error.
func (v *SupplierValidator) Clean(prompt string, suppliers []entity.Supplier) (string, []entity.Supplier, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", nil, ErrEmptyPrompt
	}

	var cleaned []entity.Supplier
	for _, supplier := range suppliers {
		supplier.SellerName = strings.TrimSpace(supplier.SellerName)
		supplier.Website = strings.TrimSpace(supplier.Website)
		supplier.Emails = v.cleanEmails(supplier.Emails)
		supplier.Phones = v.cleanPhones(supplier.Phones)
		supplier.Whatsapps = trimSignals(supplier.Whatsapps)
		supplier.Addresses = trimSignals(supplier.Addresses)
		supplier.ContactInfoFound = len(supplier.Emails) + len(supplier.Phones) + len(supplier.Whatsapps)
		if supplier.ContactInfoFound == 0 && len(supplier.Addresses) == 0 {
			continue
		}
		cleaned = append(cleaned, supplier)
	}
	if len(cleaned) == 0 {
		return "", nil, ErrNoSuppliers
	}
	return prompt, cleaned, nil
}

func (v *SupplierValidator) cleanEmails(signals []entity.ContactSignal) []entity.ContactSignal {
	seen := make(map[string]struct{}, len(signals))
	var out []entity.ContactSignal
	for _, sig := range signals {
		email := strings.ToLower(strings.TrimSpace(sig.Value))
		if email == "" || !savedEmailPattern.MatchString(email) {
			continue
		}
		domain := email[strings.Index(email, "@")+1:]
		if ascii, err := idnaProfile.ToASCII(domain); err != nil || ascii == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		sig.Value = email
		sig.Kind = entity.SignalEmail
		out = append(out, sig)
	}
	return out
}

func (v *SupplierValidator) cleanPhones(signals []entity.ContactSignal) []entity.ContactSignal {
	region := v.Region
	if region == "" {
		region = defaultPhoneRegion
	}

	seen := make(map[string]struct{}, len(signals))
	var out []entity.ContactSignal
	for _, sig := range signals {
		raw := strings.TrimSpace(sig.Value)
		if raw == "" {
			continue
		}
		number, err := phonenumbers.Parse(raw, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
			continue
		}
		formatted := phonenumbers.Format(number, phonenumbers.E164)
		if _, dup := seen[formatted]; dup {
			continue
		}
		seen[formatted] = struct{}{}
		sig.Value = formatted
		sig.Kind = entity.SignalPhone
		out = append(out, sig)
	}
	return out
}

func trimSignals(signals []entity.ContactSignal) []entity.ContactSignal {
	seen := make(map[string]struct{}, len(signals))
	var out []entity.ContactSignal
	for _, sig := range signals {
		sig.Value = strings.TrimSpace(sig.Value)
		if sig.Value == "" {
			continue
		}
		if _, dup := seen[sig.Value]; dup {
			continue
		}
		seen[sig.Value] = struct{}{}
		out = append(out, sig)
	}
	return out
}
