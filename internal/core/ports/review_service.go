package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// ReviewService exposes review submission and listing.
type ReviewService interface {
	Add(ctx context.Context, vehicleID, accountID, text string) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.ReviewWithAuthor, error)
}
