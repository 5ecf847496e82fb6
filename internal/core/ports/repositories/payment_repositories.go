package repositories

import (
	"context"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentByBookingID retrieves the payment bound to a booking, or
	// ErrNotFound when the booking has no payment yet.
	FindPaymentByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePaymentAndConfirmBooking persists the payment and cascades the bound
	// booking PENDING -> CONFIRMED in one transaction. The UNIQUE(booking_id)
	// constraint backs the one-payment-per-booking invariant; a violation is
	// surfaced as ErrConflict with no partial effect.
	SavePaymentAndConfirmBooking(ctx context.Context, payment domain.Payment) error

	// UpdatePaymentStatus updates the payment's status and paidAt, and, when
	// confirmBooking is set, cascades the bound booking to CONFIRMED in the
	// same transaction.
	UpdatePaymentStatus(ctx context.Context, payment domain.Payment, confirmBooking bool) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
