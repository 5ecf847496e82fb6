package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

// VehicleReader defines read operations for vehicle data
type VehicleReader interface {
	// FindVehicleByID retrieves a specific vehicle by its unique identifier.
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// ListVehicles retrieves a paginated list of vehicles using token-based pagination.
	// It returns the vehicles, a token for the next page, and an error.
	ListVehicles(ctx context.Context, limit int, nextToken *string, onlyAvailable bool) ([]domain.Vehicle, *string, error)

	// ListVehiclesByOwner retrieves all vehicles registered by one owner.
	ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
}

// VehicleWriter defines write operations for vehicle data
type VehicleWriter interface {
	// SaveVehicle persists a new vehicle.
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// UpdateVehicle updates mutable catalog details of a vehicle (not availability).
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// UpdateVehicleAvailability sets the availability state of a vehicle.
	UpdateVehicleAvailability(ctx context.Context, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error
}

// VehicleLocker exposes row-level locking for use inside another
// repository's transaction. The booking repository locks the vehicle row to
// serialize the conflict check against concurrent booking attempts.
type VehicleLocker interface {
	// FindVehicleByIDForUpdate loads a vehicle inside tx with a row lock held
	// until the transaction commits or rolls back.
	FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error)

	// UpdateVehicleAvailabilityInTx sets availability using the caller's transaction.
	UpdateVehicleAvailabilityInTx(ctx context.Context, tx pgx.Tx, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error
}

// VehicleRepositoryFacade combines all vehicle-related repository interfaces
type VehicleRepositoryFacade interface {
	VehicleReader
	VehicleWriter
	VehicleLocker
}
