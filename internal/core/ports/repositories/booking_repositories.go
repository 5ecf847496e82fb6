package repositories

import (
	"context"
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

// BookingReader defines read operations for booking data
type BookingReader interface {
	// FindBookingByID retrieves a specific booking by its unique identifier.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// FindBookingByRenterAndID retrieves a booking only when it belongs to the given renter.
	FindBookingByRenterAndID(ctx context.Context, renterID, bookingID string) (*domain.Booking, error)

	// FindOverlappingBookings retrieves bookings for a vehicle whose closed
	// interval overlaps [start, end] and whose status is one of the given
	// statuses. Touching endpoints count as overlap.
	FindOverlappingBookings(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)

	// ListBookingsByRenter retrieves a paginated list of the renter's bookings
	// using token-based pagination.
	ListBookingsByRenter(ctx context.Context, renterID string, limit int, nextToken *string) ([]domain.Booking, *string, error)
}

// BookingWriter defines write operations for booking data
type BookingWriter interface {
	// SaveBooking persists a new booking and flips the vehicle to RESERVED as
	// one atomic unit. The vehicle row is locked before the availability and
	// overlap checks are re-run, so two concurrent calls for the same vehicle
	// serialize; the loser observes the winner's booking and gets ErrConflict.
	SaveBooking(ctx context.Context, booking domain.Booking) error

	// UpdateBookingStatusAndAvailability transitions a booking's status and,
	// when revertAvailability is set, flips the vehicle back to AVAILABLE in
	// the same transaction. Either both updates commit or neither does.
	UpdateBookingStatusAndAvailability(ctx context.Context, bookingID string, status domain.BookingStatus, revertAvailability bool, updatedByUserID string, updatedAt time.Time) error
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}

// BookingRepositoryWithTx extends BookingRepositoryFacade with transaction capabilities
type BookingRepositoryWithTx interface {
	BookingRepositoryFacade
	TransactionManager
}
