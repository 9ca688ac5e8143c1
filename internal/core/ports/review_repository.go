package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// ReviewRepository defines persistence for vehicle reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error)
}
