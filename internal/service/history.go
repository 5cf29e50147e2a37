package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

// historyLimit caps the search-history listing.
const historyLimit = 20

// History returns the user's most recent persisted result sets.
func (s *SupplierService) History(ctx context.Context, userID uuid.UUID) ([]entity.SupplierResultSet, error) {
	return s.results.ListByUser(ctx, userID, historyLimit)
}

// SaveCurated persists a client-curated supplier list under the given
// prompt, outside the scrape pipeline.
func (s *SupplierService) SaveCurated(ctx context.Context, userID uuid.UUID, prompt string, suppliers []entity.Supplier) error {
	set := &entity.SupplierResultSet{
		UserID:     userID,
		Prompt:     prompt,
		Suppliers:  suppliers,
		TotalFound: len(suppliers),
		SearchDate: s.now(),
	}
	if err := s.results.Create(ctx, set); err != nil {
		return fmt.Errorf("persist curated suppliers: %w", err)
	}
	return nil
}
