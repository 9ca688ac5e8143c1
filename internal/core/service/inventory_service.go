package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/validation"
)

// InventoryService implements classification and vehicle operations.
type InventoryService struct {
	repo   ports.InventoryRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.InventoryRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	return s.repo.Classifications(ctx)
}

// AddClassification creates a new classification. A duplicate name is a
// user-input conflict, reported as a validation error rather than a failure.
func (s *InventoryService) AddClassification(ctx context.Context, name string) (*domain.Classification, validation.Errors, error) {
	exists, err := s.repo.ClassificationExists(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing classification: %w", err)
	}
	if exists {
		var errs validation.Errors
		errs.Add("classification_name", "Classification name already exists.")
		return nil, errs, nil
	}

	created, err := s.repo.CreateClassification(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationExists) {
			var errs validation.Errors
			errs.Add("classification_name", "Classification name already exists.")
			return nil, errs, nil
		}
		return nil, nil, err
	}

	s.logger.Info().Str("classification", created.Name).Msg("classification added")
	return created, nil, nil
}

func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error) {
	return s.repo.VehiclesByClassification(ctx, classificationID)
}

func (s *InventoryService) VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.VehicleByID(ctx, id)
}

func (s *InventoryService) AddVehicle(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	created, err := s.repo.CreateVehicle(ctx, vehicleFromInput(in))
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("make", created.Make).
		Str("model", created.Model).
		Str("classification_id", created.ClassificationID).
		Msg("vehicle added")
	return created, nil
}

func (s *InventoryService) UpdateVehicle(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	vehicle := vehicleFromInput(in)
	vehicle.ID = in.ID
	updated, err := s.repo.UpdateVehicle(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("vehicle_id", updated.ID).Msg("vehicle updated")
	return updated, nil
}

func (s *InventoryService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("vehicle_id", id).Msg("vehicle deleted")
	return nil
}

func vehicleFromInput(in ports.VehicleInput) *domain.Vehicle {
	return &domain.Vehicle{
		ClassificationID: in.ClassificationID,
		Make:             in.Make,
		Model:            in.Model,
		Description:      in.Description,
		Image:            in.Image,
		Thumbnail:        in.Thumbnail,
		Price:            in.Price,
		Year:             in.Year,
		Miles:            in.Miles,
		Color:            in.Color,
	}
}
