package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// InventoryRepository defines persistence for classifications and vehicles.
type InventoryRepository interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	ClassificationExists(ctx context.Context, name string) (bool, error)
	CreateClassification(ctx context.Context, name string) (*domain.Classification, error)

	VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error)
	VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}
