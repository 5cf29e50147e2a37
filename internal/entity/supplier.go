package entity

import (
	"time"

	"github.com/google/uuid"
)

// Signal kinds attached to ContactSignal.Kind.
const (
	SignalEmail    = "email"
	SignalPhone    = "phone"
	SignalWhatsapp = "whatsapp"
	SignalAddress  = "address"
)

// ContactSignal is one piece of contact information extracted from a
// supplier website. Signals are immutable once extracted.
type ContactSignal struct {
	Value       string `json:"value"`
	Source      string `json:"source"`
	Kind        string `json:"type"`
	Description string `json:"description"`
	City        string `json:"city,omitempty"`
}

// Supplier is a single scored candidate produced by one pipeline run.
// A record is only kept when ContactInfoFound is positive.
type Supplier struct {
	SellerName          string          `json:"sellerName"`
	Website             string          `json:"website"`
	Location            string          `json:"location"`
	Emails              []ContactSignal `json:"emails"`
	Phones              []ContactSignal `json:"phones"`
	Whatsapps           []ContactSignal `json:"whatsapps"`
	Addresses           []ContactSignal `json:"addresses"`
	ProductAvailability string          `json:"productAvailability"`
	Rating              float64         `json:"rating"`
	ContactInfoFound    int             `json:"contactInfoFound"`
	Cities              []string        `json:"cities"`
	LastUpdated         time.Time       `json:"lastUpdated"`
}

// SupplierResultSet is the persisted cache entry for one (user, prompt)
// pair. It is created at most once and never mutated afterwards.
type SupplierResultSet struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Prompt     string     `json:"prompt"`
	Suppliers  []Supplier `json:"suppliers"`
	TotalFound int        `json:"total_found"`
	SearchDate time.Time  `json:"search_date"`
	CreatedAt  time.Time  `json:"created_at"`
}
