package dto

import (
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to settle a booking.
// Amount is deliberately absent: it is always derived from the booking.
type CreatePaymentRequest struct {
	BookingID      string `json:"bookingID" binding:"required"`
	Method         string `json:"method" binding:"required,oneof=CARD BANK_TRANSFER WALLET"`
	TransactionRef string `json:"transactionRef"` // Optional; generated when absent
}

// UpdatePaymentStatusRequest defines the privileged status-transition request.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string               `json:"paymentID"`
	BookingID      string               `json:"bookingID"`
	Amount         decimal.Decimal      `json:"amount"`
	Method         domain.PaymentMethod `json:"method"`
	Status         domain.PaymentStatus `json:"status"`
	TransactionRef string               `json:"transactionRef"`
	PaidAt         *time.Time           `json:"paidAt,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		BookingID:      p.BookingID,
		Amount:         p.Amount,
		Method:         p.Method,
		Status:         p.Status,
		TransactionRef: p.TransactionRef,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}
}
