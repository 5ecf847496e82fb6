package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up all pgsql-backed repositories. The booking
// repository shares the vehicle repository so that vehicle row locks and
// availability flips happen through one code path.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	vehicleRepo := newPgxVehicleRepository(pool)
	return &portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(pool),
		VehicleRepo: vehicleRepo,
		BookingRepo: newPgxBookingRepository(pool, vehicleRepo),
		PaymentRepo: newPgxPaymentRepository(pool),
	}
}
