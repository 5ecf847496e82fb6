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
	"github.com/movira/vehicle_rental_app/internal/utils"
)

// paymentService settles bookings. Settlement is simulated synchronously:
// a created payment is immediately COMPLETED, there is no gateway round-trip.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	bookingRepo portsrepo.BookingRepositoryFacade
	notifier    portssvc.Notifier
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, bookingRepo portsrepo.BookingRepositoryFacade, notifier portssvc.Notifier) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment settles the renter's booking. At most one payment ever exists
// per booking: a pre-check catches the common retry, and the UNIQUE(booking_id)
// constraint catches the concurrent race. Either way the caller sees
// ErrConflict and the first payment stands untouched.
func (s *paymentService) CreatePayment(ctx context.Context, renterID string, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := s.GetLogger(ctx)

	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %s", apperrors.ErrValidation, req.Method)
	}

	booking, err := s.bookingRepo.FindBookingByRenterAndID(ctx, renterID, req.BookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking " + req.BookingID + " not found")
		}
		s.LogError(ctx, err, "failed to load booking for payment", "bookingID", req.BookingID)
		return nil, err
	}

	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s is cancelled and cannot be paid", apperrors.ErrInvalidState, req.BookingID)
	}

	existing, err := s.paymentRepo.FindPaymentByBookingID(ctx, req.BookingID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check existing payment", "bookingID", req.BookingID)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: booking %s already has payment %s", apperrors.ErrConflict, req.BookingID, existing.PaymentID)
	}

	transactionRef := req.TransactionRef
	if transactionRef == "" {
		transactionRef, err = utils.GenerateTransactionRef()
		if err != nil {
			s.LogError(ctx, err, "failed to generate transaction reference")
			return nil, fmt.Errorf("failed to generate transaction reference: %w", err)
		}
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		BookingID:      req.BookingID,
		Amount:         booking.Amount, // Always the booking's amount, never the request's
		Method:         method,
		Status:         domain.PaymentCompleted,
		TransactionRef: transactionRef,
		PaidAt:         &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     renterID,
			LastUpdatedAt: now,
			LastUpdatedBy: renterID,
		},
	}

	if err := s.paymentRepo.SavePaymentAndConfirmBooking(ctx, payment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to save payment", "paymentID", payment.PaymentID, "bookingID", req.BookingID)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	logger.Info("payment completed", "paymentID", payment.PaymentID, "bookingID", req.BookingID, "amount", payment.Amount.String())

	if s.notifier != nil {
		s.notifier.PaymentCompleted(ctx, &payment)
	}

	return &payment, nil
}

// UpdatePaymentStatus transitions a payment through its state machine.
// Moving to COMPLETED with an unset paidAt stamps it and cascades the bound
// booking to CONFIRMED in the same transaction.
func (s *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus string) (*domain.Payment, error) {
	logger := s.GetLogger(ctx)

	target := domain.PaymentStatus(newStatus)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %s", apperrors.ErrValidation, newStatus)
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
		}
		s.LogError(ctx, err, "failed to load payment", "paymentID", paymentID)
		return nil, err
	}

	if !payment.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: payment %s cannot move from %s to %s", apperrors.ErrInvalidState, paymentID, payment.Status, target)
	}

	now := time.Now()
	confirmBooking := false
	if target == domain.PaymentCompleted && payment.PaidAt == nil {
		payment.PaidAt = &now
		confirmBooking = true
	}
	payment.Status = target
	payment.LastUpdatedAt = now

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, *payment, confirmBooking); err != nil {
		s.LogError(ctx, err, "failed to update payment status", "paymentID", paymentID)
		return nil, err
	}

	logger.Info("payment status updated", "paymentID", paymentID, "status", target)
	return payment, nil
}

// GetPaymentByBookingID retrieves the payment bound to the renter's booking.
func (s *paymentService) GetPaymentByBookingID(ctx context.Context, renterID, bookingID string) (*domain.Payment, error) {
	// Ownership check first so a foreign booking ID reads as not found.
	if _, err := s.bookingRepo.FindBookingByRenterAndID(ctx, renterID, bookingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking " + bookingID + " not found")
		}
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no payment found for booking " + bookingID)
		}
		s.LogError(ctx, err, "failed to get payment for booking", "bookingID", bookingID)
		return nil, err
	}
	return payment, nil
}
