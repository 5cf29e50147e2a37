package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. UsageCount and SubscriptionLimit back
// the quota gate in front of the supplier search endpoint.
type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	UsageCount        int       `json:"usage_count"`
	SubscriptionLimit int       `json:"subscription_limit"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
