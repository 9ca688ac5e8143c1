package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/validation"
)

// VehicleInput carries the fields of an add/edit vehicle form.
type VehicleInput struct {
	ID               string
	ClassificationID string
	Make             string
	Model            string
	Description      string
	Image            string
	Thumbnail        string
	Price            float64
	Year             int
	Miles            int
	Color            string
}

// InventoryService exposes classification and vehicle operations to the
// handlers. As with AccountService, validation.Errors reports user-input
// conflicts and error reports system failures.
type InventoryService interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	AddClassification(ctx context.Context, name string) (*domain.Classification, validation.Errors, error)

	VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error)
	VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
	AddVehicle(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}
