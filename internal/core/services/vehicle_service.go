package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movira/vehicle_rental_app/internal/apperrors"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
	portssvc "github.com/movira/vehicle_rental_app/internal/core/ports/services"
	"github.com/movira/vehicle_rental_app/internal/dto"
)

// vehicleService manages the vehicle catalog.
type vehicleService struct {
	BaseService
	vehicleRepo portsrepo.VehicleRepositoryFacade
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicleRepo portsrepo.VehicleRepositoryFacade) portssvc.VehicleSvcFacade {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

// CreateVehicle registers a new vehicle for the owner. New vehicles start out
// AVAILABLE.
func (s *vehicleService) CreateVehicle(ctx context.Context, ownerID string, req dto.CreateVehicleRequest) (*domain.Vehicle, error) {
	logger := s.GetLogger(ctx)

	if req.DailyRate.IsNegative() || req.DailyRate.IsZero() {
		return nil, fmt.Errorf("%w: daily rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	vehicle := domain.Vehicle{
		VehicleID:    uuid.NewString(),
		OwnerID:      ownerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		PlateNumber:  req.PlateNumber,
		DailyRate:    req.DailyRate,
		Availability: domain.Available,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.vehicleRepo.SaveVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to save vehicle", "vehicleID", vehicle.VehicleID)
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	logger.Info("vehicle registered", "vehicleID", vehicle.VehicleID, "ownerID", ownerID)
	return &vehicle, nil
}

// GetVehicleByID retrieves a vehicle by ID.
func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("vehicle " + vehicleID + " not found")
		}
		s.LogError(ctx, err, "failed to get vehicle", "vehicleID", vehicleID)
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles retrieves a paginated list of vehicles.
func (s *vehicleService) ListVehicles(ctx context.Context, params dto.ListVehiclesParams) (*dto.ListVehiclesResponse, error) {
	vehicles, nextToken, err := s.vehicleRepo.ListVehicles(ctx, params.Limit, params.NextToken, params.OnlyAvailable)
	if err != nil {
		s.LogError(ctx, err, "failed to list vehicles")
		return nil, err
	}
	return dto.ToListVehiclesResponse(vehicles, nextToken), nil
}

// ListVehiclesByOwner retrieves all vehicles registered by the given owner.
func (s *vehicleService) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.ListVehiclesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list vehicles for owner", "ownerID", ownerID)
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle updates catalog details of a vehicle owned by the caller.
func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID, vehicleID string, req dto.UpdateVehicleRequest) (*domain.Vehicle, error) {
	logger := s.GetLogger(ctx)

	vehicle, err := s.loadOwnedVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.DailyRate != nil {
		if req.DailyRate.IsNegative() || req.DailyRate.IsZero() {
			return nil, fmt.Errorf("%w: daily rate must be positive", apperrors.ErrValidation)
		}
		vehicle.DailyRate = *req.DailyRate
	}

	vehicle.LastUpdatedAt = time.Now()
	vehicle.LastUpdatedBy = ownerID

	if err := s.vehicleRepo.UpdateVehicle(ctx, *vehicle); err != nil {
		s.LogError(ctx, err, "failed to update vehicle", "vehicleID", vehicleID)
		return nil, err
	}

	logger.Info("vehicle updated", "vehicleID", vehicleID)
	return vehicle, nil
}

// SetVehicleMaintenance moves a vehicle between AVAILABLE and MAINTENANCE.
// A RESERVED vehicle cannot be pulled into maintenance while a booking holds it.
func (s *vehicleService) SetVehicleMaintenance(ctx context.Context, ownerID, vehicleID string, underMaintenance bool) (*domain.Vehicle, error) {
	logger := s.GetLogger(ctx)

	vehicle, err := s.loadOwnedVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	var target domain.VehicleAvailability
	if underMaintenance {
		if vehicle.Availability != domain.Available {
			return nil, fmt.Errorf("%w: vehicle %s must be available to enter maintenance", apperrors.ErrInvalidState, vehicleID)
		}
		target = domain.Maintenance
	} else {
		if vehicle.Availability != domain.Maintenance {
			return nil, fmt.Errorf("%w: vehicle %s is not under maintenance", apperrors.ErrInvalidState, vehicleID)
		}
		target = domain.Available
	}

	now := time.Now()
	if err := s.vehicleRepo.UpdateVehicleAvailability(ctx, vehicleID, target, ownerID, now); err != nil {
		s.LogError(ctx, err, "failed to update vehicle availability", "vehicleID", vehicleID)
		return nil, err
	}

	vehicle.Availability = target
	vehicle.LastUpdatedAt = now
	vehicle.LastUpdatedBy = ownerID

	logger.Info("vehicle maintenance state changed", "vehicleID", vehicleID, "availability", target)
	return vehicle, nil
}

// DeactivateVehicle retires a vehicle from the catalog. Deactivation is
// terminal and only possible while no booking holds the vehicle.
func (s *vehicleService) DeactivateVehicle(ctx context.Context, ownerID, vehicleID string) error {
	logger := s.GetLogger(ctx)

	vehicle, err := s.loadOwnedVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return err
	}

	if vehicle.Availability == domain.Reserved {
		return fmt.Errorf("%w: vehicle %s has an active reservation", apperrors.ErrInvalidState, vehicleID)
	}
	if vehicle.Availability == domain.Deactivated {
		return fmt.Errorf("%w: vehicle %s is already deactivated", apperrors.ErrInvalidState, vehicleID)
	}

	if err := s.vehicleRepo.UpdateVehicleAvailability(ctx, vehicleID, domain.Deactivated, ownerID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to deactivate vehicle", "vehicleID", vehicleID)
		return err
	}

	logger.Info("vehicle deactivated", "vehicleID", vehicleID)
	return nil
}

// loadOwnedVehicle loads a vehicle and verifies the caller owns it. A foreign
// vehicle reads as not found rather than forbidden.
func (s *vehicleService) loadOwnedVehicle(ctx context.Context, ownerID, vehicleID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("vehicle " + vehicleID + " not found")
		}
		s.LogError(ctx, err, "failed to load vehicle", "vehicleID", vehicleID)
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("vehicle " + vehicleID + " not found")
	}
	return vehicle, nil
}
