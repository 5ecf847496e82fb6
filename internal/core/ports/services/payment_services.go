package services

import (
	"context"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPaymentByBookingID retrieves the payment bound to the renter's booking.
	GetPaymentByBookingID(ctx context.Context, renterID, bookingID string) (*domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// CreatePayment settles a booking. At most one payment ever exists per
	// booking; the amount is always taken from the booking itself.
	CreatePayment(ctx context.Context, renterID string, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// UpdatePaymentStatus transitions a payment's status. Privileged callers only.
	UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
