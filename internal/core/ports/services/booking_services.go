package services

import (
	"context"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/dto"
)

// BookingReaderSvc defines read operations for bookings
type BookingReaderSvc interface {
	// GetBookingByID retrieves a booking owned by the renter.
	GetBookingByID(ctx context.Context, renterID, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves a paginated list of the renter's bookings.
	ListBookings(ctx context.Context, renterID string, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error)
}

// BookingWriterSvc defines write operations for bookings
type BookingWriterSvc interface {
	// CreateBooking reserves a vehicle for a closed date interval. The
	// conflict check and the booking insert are serialized per vehicle.
	CreateBooking(ctx context.Context, renterID string, req dto.CreateBookingRequest) (*domain.Booking, error)

	// CancelBooking transitions the renter's booking to CANCELLED.
	CancelBooking(ctx context.Context, renterID, bookingID string) (*domain.Booking, error)
}

// BookingSvcFacade combines all booking-related service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
}
