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
	"github.com/movira/vehicle_rental_app/internal/utils/pricing"
)

// bookingService handles reservation of vehicles over closed date intervals.
type bookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	vehicleRepo portsrepo.VehicleRepositoryFacade
	notifier    portssvc.Notifier
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo portsrepo.BookingRepositoryFacade, vehicleRepo portsrepo.VehicleRepositoryFacade, notifier portssvc.Notifier) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		notifier:    notifier,
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// activeBookingStatuses are the statuses that occupy a vehicle's calendar.
// CANCELLED and COMPLETED bookings never block a new reservation.
var activeBookingStatuses = []domain.BookingStatus{
	domain.BookingPending,
	domain.BookingConfirmed,
	domain.BookingActive,
}

// CreateBooking reserves a vehicle for the closed interval
// [req.StartDate, req.EndDate]. Bookings that touch on an endpoint conflict:
// a vehicle returned on the 5th cannot be picked up by someone else on the
// 5th. The pre-checks here fail fast; the authoritative check runs again
// under the vehicle row lock inside SaveBooking.
func (s *bookingService) CreateBooking(ctx context.Context, renterID string, req dto.CreateBookingRequest) (*domain.Booking, error) {
	logger := s.GetLogger(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}
	if req.PickupLocation == "" || req.ReturnLocation == "" {
		return nil, fmt.Errorf("%w: pickup and return locations are required", apperrors.ErrValidation)
	}

	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("vehicle " + req.VehicleID + " not found")
		}
		s.LogError(ctx, err, "failed to load vehicle for booking", "vehicleID", req.VehicleID)
		return nil, err
	}

	if vehicle.Availability != domain.Available {
		return nil, fmt.Errorf("%w: vehicle %s is not available for booking", apperrors.ErrConflict, req.VehicleID)
	}

	overlapping, err := s.bookingRepo.FindOverlappingBookings(ctx, req.VehicleID, req.StartDate, req.EndDate, activeBookingStatuses)
	if err != nil {
		s.LogError(ctx, err, "failed to check overlapping bookings", "vehicleID", req.VehicleID)
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: vehicle %s already booked for the requested dates", apperrors.ErrConflict, req.VehicleID)
	}

	now := time.Now()
	booking := domain.Booking{
		BookingID:      uuid.NewString(),
		VehicleID:      req.VehicleID,
		RenterID:       renterID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		Amount:         pricing.RentalAmount(req.StartDate, req.EndDate, vehicle.DailyRate),
		Status:         domain.BookingPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     renterID,
			LastUpdatedAt: now,
			LastUpdatedBy: renterID,
		},
	}

	if err := s.bookingRepo.SaveBooking(ctx, booking); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to save booking", "bookingID", booking.BookingID)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("booking created", "bookingID", booking.BookingID, "vehicleID", booking.VehicleID, "renterID", renterID)

	if s.notifier != nil {
		s.notifier.BookingCreated(ctx, &booking)
	}

	return &booking, nil
}

// CancelBooking transitions the renter's booking to CANCELLED. The vehicle
// reverts to AVAILABLE only when the booking had been CONFIRMED or ACTIVE;
// cancelling a PENDING booking leaves the vehicle RESERVED until the owner
// intervenes.
func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	logger := s.GetLogger(ctx)

	booking, err := s.bookingRepo.FindBookingByRenterAndID(ctx, renterID, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking " + bookingID + " not found")
		}
		s.LogError(ctx, err, "failed to load booking for cancellation", "bookingID", bookingID)
		return nil, err
	}

	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, fmt.Errorf("%w: booking %s cannot be cancelled from status %s", apperrors.ErrInvalidState, bookingID, booking.Status)
	}

	revertAvailability := booking.Status == domain.BookingConfirmed || booking.Status == domain.BookingActive

	now := time.Now()
	err = s.bookingRepo.UpdateBookingStatusAndAvailability(ctx, bookingID, domain.BookingCancelled, revertAvailability, renterID, now)
	if err != nil {
		s.LogError(ctx, err, "failed to cancel booking", "bookingID", bookingID)
		return nil, err
	}

	booking.Status = domain.BookingCancelled
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = renterID

	logger.Info("booking cancelled", "bookingID", bookingID, "availabilityReverted", revertAvailability)

	if s.notifier != nil {
		s.notifier.BookingCancelled(ctx, booking)
	}

	return booking, nil
}

// GetBookingByID retrieves a booking owned by the renter.
func (s *bookingService) GetBookingByID(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByRenterAndID(ctx, renterID, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking " + bookingID + " not found")
		}
		s.LogError(ctx, err, "failed to get booking", "bookingID", bookingID)
		return nil, err
	}
	return booking, nil
}

// ListBookings retrieves a paginated list of the renter's bookings.
func (s *bookingService) ListBookings(ctx context.Context, renterID string, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error) {
	bookings, nextToken, err := s.bookingRepo.ListBookingsByRenter(ctx, renterID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list bookings", "renterID", renterID)
		return nil, err
	}
	return dto.ToListBookingsResponse(bookings, nextToken), nil
}
