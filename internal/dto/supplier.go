package dto

import (
	"time"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

// FindSupplierRequest carries the free-form sourcing prompt.
type FindSupplierRequest struct {
	Prompt string `json:"prompt"`
}

// SupplierSearchResponse is the wire shape returned by POST /find-supplier.
type SupplierSearchResponse struct {
	Success        bool              `json:"success"`
	TotalResults   int               `json:"totalResults"`
	Results        []entity.Supplier `json:"results"`
	Cached         bool              `json:"cached"`
	ConversationID string            `json:"conversationId,omitempty"`
	SearchDate     time.Time         `json:"searchDate"`
	Message        string            `json:"message"`
}

// SaveSupplierRequest carries a client-curated supplier list.
type SaveSupplierRequest struct {
	Prompt    string            `json:"prompt"`
	Suppliers []entity.Supplier `json:"suppliers"`
}
