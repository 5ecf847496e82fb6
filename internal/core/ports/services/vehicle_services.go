package services

import (
	"context"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/dto"
)

// VehicleReaderSvc defines read operations for the vehicle catalog
type VehicleReaderSvc interface {
	// GetVehicleByID retrieves a vehicle by ID.
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// ListVehicles retrieves a paginated list of vehicles.
	ListVehicles(ctx context.Context, params dto.ListVehiclesParams) (*dto.ListVehiclesResponse, error)

	// ListVehiclesByOwner retrieves all vehicles registered by the given owner.
	ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
}

// VehicleWriterSvc defines write operations for the vehicle catalog
type VehicleWriterSvc interface {
	// CreateVehicle registers a new vehicle for the owner.
	CreateVehicle(ctx context.Context, ownerID string, req dto.CreateVehicleRequest) (*domain.Vehicle, error)

	// UpdateVehicle updates catalog details of a vehicle owned by the caller.
	UpdateVehicle(ctx context.Context, ownerID, vehicleID string, req dto.UpdateVehicleRequest) (*domain.Vehicle, error)

	// SetVehicleMaintenance moves a vehicle between AVAILABLE and MAINTENANCE.
	SetVehicleMaintenance(ctx context.Context, ownerID, vehicleID string, underMaintenance bool) (*domain.Vehicle, error)

	// DeactivateVehicle retires a vehicle from the catalog.
	DeactivateVehicle(ctx context.Context, ownerID, vehicleID string) error
}

// VehicleSvcFacade combines all vehicle-related service interfaces
type VehicleSvcFacade interface {
	VehicleReaderSvc
	VehicleWriterSvc
}
